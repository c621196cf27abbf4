package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/linkroute/pkg/diagram"
	"github.com/matzehuels/linkroute/pkg/router"
)

const (
	// DefaultMaxBody bounds request bodies.
	DefaultMaxBody = 8 << 20

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Defaults is the layout config partial request configs are merged over.
	// A zero value means diagram.DefaultLayoutConfig().
	Defaults diagram.LayoutConfig

	// MaxBody bounds request bodies in bytes. Zero means DefaultMaxBody.
	MaxBody int64

	// Timeout bounds the time spent routing one request. Zero disables it.
	Timeout time.Duration
}

// Server serves the routing API.
type Server struct {
	router *router.Router
	logger *log.Logger
	opts   Options
}

// New creates a server routing with r.
func New(r *router.Router, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Defaults == (diagram.LayoutConfig{}) {
		opts.Defaults = diagram.DefaultLayoutConfig()
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	return &Server{router: r, logger: logger, opts: opts}
}

// Handler returns the HTTP handler with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.opts.Timeout > 0 {
		r.Use(middleware.Timeout(s.opts.Timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/routes", s.handleRoutes)
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

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
