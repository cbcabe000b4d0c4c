package httpapi

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/commands"
	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

type messagesResponse struct {
	SessionID string              `json:"session_id"`
	Messages  []chat.Message      `json:"messages"`
	Plan      *planning.AgentPlan `json:"plan,omitempty"`
	Composing bool                `json:"composing"`
}

type healthResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
	// Listeners counts live stream subscribers for chat messages.
	Listeners int `json:"listeners"`
}

type sendRequest struct {
	Content string `json:"content"`
	// Wait blocks the request until the reply is committed.
	Wait bool `json:"wait,omitempty"`
}

type suggestionRequest struct {
	Suggestion string `json:"suggestion"`
	Wait       bool   `json:"wait,omitempty"`
}

type sendResponse struct {
	Message chat.Message  `json:"message"`
	Reply   *chat.Message `json:"reply,omitempty"`
}

type objectiveRequest struct {
	Objective string `json:"objective"`
}

type toggleResponse struct {
	Index     int     `json:"index"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		SessionID: s.session.ID(),
		Listeners: s.session.Bus().HandlerCount(events.TypeMessageAppended),
	})
}

func (s *Server) listMessages(w http.ResponseWriter, _ *http.Request) {
	msgs, plan := s.session.Snapshot()
	writeJSON(w, http.StatusOK, messagesResponse{
		SessionID: s.session.ID(),
		Messages:  msgs,
		Plan:      plan,
		Composing: s.session.Composing(),
	})
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	s.send(w, r, req.Content, req.Wait)
}

func (s *Server) sendSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	s.send(w, r, req.Suggestion, req.Wait)
}

func (s *Server) send(w http.ResponseWriter, r *http.Request, text string, wait bool) {
	pending, err := s.session.Send(r.Context(), text)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if !wait {
		writeJSON(w, http.StatusAccepted, sendResponse{Message: pending.User})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.waitTimeout)
	defer cancel()
	reply, err := pending.Wait(ctx)
	if err != nil {
		// The reply still lands; the client can poll the message list.
		writeJSON(w, http.StatusAccepted, sendResponse{Message: pending.User})
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{Message: pending.User, Reply: &reply})
}

func (s *Server) clearChat(w http.ResponseWriter, r *http.Request) {
	s.session.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getPlan(w http.ResponseWriter, _ *http.Request) {
	view, ok := s.session.PlanView()
	if !ok {
		writeDomainErr(w, application.ErrNoPlan)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_argument", "task index must be an integer")
		return
	}
	res, err := s.session.ToggleTask(r.Context(), index)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Index: res.Index, Completed: res.Completed, Progress: res.Progress})
}

func (s *Server) updateObjective(w http.ResponseWriter, r *http.Request) {
	var req objectiveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	plan, err := s.session.UpdateObjective(r.Context(), req.Objective)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) executeAction(w http.ResponseWriter, r *http.Request) {
	msg, err := s.session.ExecuteAction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list := commands.Filter(q.Get("prefix"))
	if c := q.Get("category"); c != "" {
		in := commands.ByCategory(commands.Category(c))
		list = slices.DeleteFunc(list, func(cmd commands.Command) bool {
			return !slices.Contains(in, cmd)
		})
	}
	writeJSON(w, http.StatusOK, list)
}
