package httpapi

import (
	"net/http"

	"github.com/felixgeelhaar/agenthub/pkg/application"
)

func (s *Server) withPlatform(w http.ResponseWriter) bool {
	if s.platform == nil {
		writeDomainErr(w, application.ErrPlatformUnavailable)
		return false
	}
	return true
}

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	if !s.withPlatform(w) {
		return
	}
	res, err := s.platform.Agents.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	if !s.withPlatform(w) {
		return
	}
	res, err := s.platform.Gateway.ListTools(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) listMemories(w http.ResponseWriter, r *http.Request) {
	if !s.withPlatform(w) {
		return
	}
	res, err := s.platform.Memory.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) listObservations(w http.ResponseWriter, r *http.Request) {
	if !s.withPlatform(w) {
		return
	}
	res, err := s.platform.Observability.ListSessions(r.Context(), r.URL.Query().Get("agent_id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
