// Package httpapi serves the tag REST API over net/http.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tagmanager/internal/adapters/search"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

const shutdownTimeout = 5 * time.Second

// Server handles HTTP requests for the tag API
type Server struct {
	repo     ports.TagRepository
	vcs      ports.VersionControl
	index    ports.ReferenceIndex
	searcher domain.Searcher
	logger   *slog.Logger
	metrics  *metrics
	addr     string
}

// Option configures a Server
type Option func(*Server)

// WithIndex enables the reference index. Without it references are
// computed by scanning the repository.
func WithIndex(index ports.ReferenceIndex) Option {
	return func(s *Server) {
		s.index = index
	}
}

// WithLogger sets the logger used for access and error logs
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAddr sets the listen address used by Run
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// New creates a new API server
func New(repo ports.TagRepository, vcs ports.VersionControl, opts ...Option) *Server {
	s := &Server{
		repo:     repo,
		vcs:      vcs,
		searcher: search.NewFuzzy(),
		logger:   slog.Default(),
		metrics:  newMetrics(),
		addr:     ":8080",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full handler chain: routes, metrics, access log,
// request ids and CORS
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Tags
	mux.HandleFunc("GET /api/tags", s.listTags)
	mux.HandleFunc("POST /api/tags", s.createTag)
	mux.HandleFunc("GET /api/tags/{category}", s.listCategory)
	mux.HandleFunc("GET /api/tags/{category}/{id}", s.getTag)
	mux.HandleFunc("PUT /api/tags/{category}/{id}", s.updateTag)
	mux.HandleFunc("DELETE /api/tags/{category}/{id}", s.deleteTag)
	mux.HandleFunc("GET /api/tags/{category}/{id}/references", s.references)

	mux.HandleFunc("POST /api/validate", s.validate)
	mux.HandleFunc("GET /api/search", s.search)

	// Git
	mux.HandleFunc("GET /api/git/status", s.gitStatus)
	mux.HandleFunc("POST /api/git/commit", s.gitCommit)
	mux.HandleFunc("GET /api/git/log", s.gitLog)

	mux.HandleFunc("GET /healthz", s.health)
	mux.Handle("GET /metrics", s.metrics.handler())

	var h http.Handler = mux
	h = s.instrument(h)
	h = s.accessLog(h)
	h = withRequestID(h)
	h = withCORS(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
