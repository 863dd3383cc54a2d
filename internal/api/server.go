// Package api serves the dashboard data over HTTP as JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/andyphuawc114/boardgamewhiz/internal/application/handlers"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
)

// Handlers holds the use case handlers served by the API. Query may be nil
// when no vector index is configured; review search then answers 503.
type Handlers struct {
	Catalog   *handlers.CatalogHandler
	Recommend *handlers.RecommendHandler
	Trend     *handlers.TrendHandler
	Review    *handlers.ReviewHandler
	Query     *handlers.QueryHandler
}

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	cfg        config.ServerConfig
	h          Handlers
}

// NewServer creates a new API server.
func NewServer(cfg config.ServerConfig, h Handlers) *Server {
	if cfg.Addr == "" {
		cfg.Addr = config.Default().Server.Addr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = config.Default().Server.ShutdownTimeout
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		h:      h,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(RequestIDWithLogging())
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(RequestMetrics())
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.cfg.Addr).Msg("API server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	logging.Info().Msg("API server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
