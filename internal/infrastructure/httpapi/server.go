// Package httpapi exposes a chat session over HTTP and websockets.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/sse"
	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

// Server serves one session.
type Server struct {
	session  *application.Session
	platform *platform.Client
	logger   *slog.Logger
	origins  []string
	events   *sse.Handler
	limiter  *writeLimiter
	// waitTimeout bounds how long a request with wait=true blocks for the reply.
	waitTimeout time.Duration
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAllowedOrigins restricts websocket upgrades to the given origins.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithWaitTimeout bounds blocking sends.
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.waitTimeout = d
		}
	}
}

// WithRateLimit caps mutating requests per client at perSecond with the
// given burst. A non-positive rate disables the limit.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond > 0 {
			s.limiter = newWriteLimiter(perSecond, burst)
		}
	}
}

// New creates a server for session.
func New(session *application.Session, opts ...Option) *Server {
	s := &Server{
		session:     session,
		platform:    session.Platform(),
		logger:      slog.Default(),
		waitTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = sse.NewHandler(session.Bus())
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors)
	if s.limiter != nil {
		r.Use(s.limiter.middleware)
	}

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(api chi.Router) {
		api.Route("/chat", func(r chi.Router) {
			r.Get("/messages", s.listMessages)
			r.Post("/messages", s.sendMessage)
			r.Delete("/", s.clearChat)
			r.Post("/suggestions", s.sendSuggestion)
			r.Post("/actions/{id}", s.executeAction)
			r.Get("/stream", s.stream)
			r.Get("/events", s.events.ServeHTTP)

			r.Route("/plan", func(r chi.Router) {
				r.Get("/", s.getPlan)
				r.Post("/tasks/{index}/toggle", s.toggleTask)
				r.Put("/objective", s.updateObjective)
			})
		})

		api.Get("/commands", s.listCommands)

		api.Route("/platform", func(r chi.Router) {
			r.Get("/agents", s.listAgents)
			r.Get("/tools", s.listTools)
			r.Get("/memories", s.listMemories)
			r.Get("/observations", s.listObservations)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Request-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
