// Package server exposes generation and analysis over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /v1/graphs?degrees=3,3,2,2,1,1&partitioner=morgan&disconnected=true&max=100
//	GET /v1/automorphisms?graph=0:1,1:2
//	GET /v1/render?graph=0:1,1:2&format=svg&orbits=true
//
// Every response carries an X-Request-ID header. Errors are JSON objects with
// a machine-readable code and a message.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/orbitgen/pkg/pipeline"
)

// DefaultRunTimeout caps a single generation request when the client does
// not ask for less.
const DefaultRunTimeout = 30 * time.Second

// DefaultMaxResults caps the graphs returned by one request.
const DefaultMaxResults = 10000

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	router  chi.Router
	timeout time.Duration
	limit   int
}

// Option configures a [Server].
type Option func(*Server)

// WithRunTimeout sets the per-request generation timeout.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxResults sets the largest result count a request may ask for.
func WithMaxResults(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.limit = n
		}
	}
}

// New builds the router. A nil logger selects log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		timeout: DefaultRunTimeout,
		limit:   DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/graphs", s.handleGraphs)
		r.Get("/automorphisms", s.handleAutomorphisms)
		r.Get("/render", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
