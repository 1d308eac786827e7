// Package server exposes family graphs and interactive viewer sessions over
// HTTP.
//
// Static documents are rendered on request:
//
//	GET    /api/graph?format=svg&selected=binh
//
// Interactive hosts open a session and forward their UI events; every
// event answers with the new view state (positions, highlight flags, search
// panel, info panel and camera target):
//
//	POST   /api/sessions
//	GET    /api/sessions/{id}
//	DELETE /api/sessions/{id}
//	POST   /api/sessions/{id}/select   {"id": "binh"}
//	POST   /api/sessions/{id}/clear
//	POST   /api/sessions/{id}/pane
//	POST   /api/sessions/{id}/search   {"query": "le van"}
//	POST   /api/sessions/{id}/keys     {"key": "ArrowDown"}
//	POST   /api/sessions/{id}/pick     {"index": 0}
//	POST   /api/sessions/{id}/measure  {"sizes": {"binh": {"width": 140, "height": 40}}}
//	DELETE /api/sessions/{id}/nodes    always refused
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/session"
)

const (
	cleanupInterval = time.Minute
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

// Server serves one configured data source.
type Server struct {
	runner *pipeline.Runner
	store  *session.MemoryStore
	opts   pipeline.Options
	logger *log.Logger
}

// New creates a server. opts names the source and the layout settings used
// by every request; requests may only change the formats and selection.
func New(runner *pipeline.Runner, store *session.MemoryStore, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if store == nil {
		store = session.NewMemoryStore(session.DefaultTTL, session.WithLogger(logger))
	}
	opts.Logger = logger
	return &Server{runner: runner, store: store, opts: opts, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleGetSession))
			r.Delete("/", s.handleDeleteSession)
			r.Post("/select", s.withSession(s.handleSelect))
			r.Post("/clear", s.withSession(s.handleClear))
			r.Post("/pane", s.withSession(s.handlePane))
			r.Post("/search", s.withSession(s.handleSearch))
			r.Post("/keys", s.withSession(s.handleKey))
			r.Post("/pick", s.withSession(s.handlePick))
			r.Post("/measure", s.withSession(s.handleMeasure))
			r.Delete("/nodes", s.withSession(s.handleDeleteNodes))
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.store.Run(ctx, cleanupInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "source", s.opts.Source)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
