// Package sse streams session events as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
)

// Handler streams events from a bus to every connected client.
type Handler struct {
	bus *events.Bus
}

// NewHandler creates a handler reading from bus.
func NewHandler(bus *events.Bus) *Handler {
	return &Handler{bus: bus}
}

// ServeHTTP streams until the client disconnects. The optional "types"
// query parameter is a comma-separated allow list of event types.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	var types []string
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	ch := make(chan events.Event, 64)
	unsubscribe := h.bus.Subscribe("sse", func(_ context.Context, e events.Event) error {
		select {
		case ch <- e:
		default:
			// Drop if client is slow
		}
		return nil
	}, types...)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-ch:
			data, err := json.Marshal(e)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data)
			flusher.Flush()
		}
	}
}
