// Package server is the demo/library server: it owns an application
// catalog, serves JSON snapshots of it over HTTP and WebSocket, and renders
// the catalog server-side through the real list engine.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shelf-ui/shelf/internal/library"
	"github.com/shelf-ui/shelf/pkg/metrics"
	"github.com/shelf-ui/shelf/pkg/telemetry"
	"github.com/shelf-ui/shelf/pkg/thumbs"
)

// Server serves the library catalog and its SSR view.
type Server struct {
	addr         string
	logger       *slog.Logger
	library      *library.Library
	store        thumbs.Store
	recorder     *metrics.Recorder
	tracer       *telemetry.Tracer
	pollInterval time.Duration

	view       *view
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the listen address (default "localhost:8460").
func WithAddress(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithLogger sets the logger (default slog.Default).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPollInterval sets the poll cadence advertised to snapshot clients
// (default 5s).
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) {
		s.pollInterval = d
	}
}

// WithRecorder records reconcile metrics for the SSR view.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(s *Server) {
		s.recorder = recorder
	}
}

// WithTracer traces SSR reconciliations.
func WithTracer(tracer *telemetry.Tracer) Option {
	return func(s *Server) {
		s.tracer = tracer
	}
}

// New creates a Server over the given library and thumbnail store.
func New(lib *library.Library, store thumbs.Store, opts ...Option) *Server {
	s := &Server{
		addr:         "localhost:8460",
		logger:       slog.Default(),
		library:      lib,
		store:        store,
		pollInterval: 5 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = newView(store, s.recorder, s.tracer, s.logger)
	return s
}

// Handler returns the server's HTTP handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleFeed)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/apps", s.handleSnapshot)
		r.Post("/apps", s.handleCreate)
		r.Patch("/apps/{id}", s.handleRename)
		r.Delete("/apps/{id}", s.handleDelete)
	})
	return r
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
