package httpapi

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	streamBuf  = 64
)

// clientFrame is what a websocket client may send.
type clientFrame struct {
	Type    string `json:"type"` // "send", "suggestion" or "clear"
	Content string `json:"content"`
}

// serverFrame wraps everything the stream pushes to the client.
type serverFrame struct {
	Type  string        `json:"type"` // "event" or "error"
	Event *events.Event `json:"event,omitempty"`
	Error string        `json:"error,omitempty"`
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(s.origins) == 0 {
				return true
			}
			return slices.Contains(s.origins, r.Header.Get("Origin"))
		},
	}
}

// stream upgrades to a websocket that pushes session events and accepts
// chat input frames.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	out := make(chan serverFrame, streamBuf)
	unsubscribe := s.session.Bus().Subscribe("websocket", func(_ context.Context, e events.Event) error {
		select {
		case out <- serverFrame{Type: "event", Event: &e}:
		default:
			s.logger.Debug("websocket client too slow, dropping event", "type", e.Type)
		}
		return nil
	})
	defer unsubscribe()

	go s.readFrames(ctx, cancel, conn, out)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case frame := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) readFrames(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- serverFrame) {
	defer cancel()
	conn.SetReadLimit(1 << 16)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var f clientFrame
		if err := conn.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, context.Canceled) {
				s.logger.Debug("websocket read ended", "error", err)
			}
			return
		}

		var err error
		switch f.Type {
		case "send", "suggestion":
			_, err = s.session.Send(ctx, f.Content)
		case "clear":
			s.session.Clear(ctx)
		default:
			err = errors.New("unknown frame type " + f.Type)
		}
		if err != nil {
			select {
			case out <- serverFrame{Type: "error", Error: err.Error()}:
			default:
			}
		}
	}
}
