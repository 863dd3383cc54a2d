package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.health)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.catalogInfo)
			r.Post("/refresh", s.refreshCatalog)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/top", s.topGames)
			r.Get("/{selection}", s.findGame)
			r.Get("/{selection}/recommendations", s.recommendations)
			r.Get("/{selection}/reviews", s.gameReviews)
		})

		r.Get("/reviews/search", s.searchReviews)
		r.Get("/trends/{chart}", s.trend)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   http.StatusText(http.StatusNotFound),
			Message: "no route for " + r.URL.Path,
			Code:    http.StatusNotFound,
		})
	})
}
