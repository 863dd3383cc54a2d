package api

import (
	"net/http"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	info, err := s.h.Catalog.HandleInfo(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"catalog": info,
		"search":  s.h.Query != nil,
	})
}

func (s *Server) catalogInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.h.Catalog.HandleInfo(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, info)
}

func (s *Server) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	info, err := s.h.Catalog.HandleRefresh(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, info)
}

func (s *Server) topGames(w http.ResponseWriter, r *http.Request) {
	n, err := intParamOr(r, "n", services.DefaultTopGames)
	if err != nil {
		writeError(w, r, err)
		return
	}

	games, err := s.h.Catalog.HandleTop(r.Context(), n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, games)
}

func (s *Server) findGame(w http.ResponseWriter, r *http.Request) {
	selection, err := pathParam(r, "selection")
	if err != nil {
		writeError(w, r, err)
		return
	}

	g, err := s.h.Catalog.HandleFind(r.Context(), selection)
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, entities.RankedGame{Game: g, Link: g.Link()})
}

// recommendations accepts k, metric, min_year, players, min_rating_tier and
// min_votes query parameters.
func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	selection, err := pathParam(r, "selection")
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := services.RecommendOptions{Metric: r.URL.Query().Get("metric")}
	if opts.K, err = intParamOr(r, "k", 0); err != nil {
		writeError(w, r, err)
		return
	}
	for name, dst := range map[string]**int{
		"min_year":        &opts.MinYear,
		"players":         &opts.PlayerCount,
		"min_rating_tier": &opts.MinRatingTier,
		"min_votes":       &opts.MinVotes,
	} {
		if *dst, err = intParam(r, name); err != nil {
			writeError(w, r, err)
			return
		}
	}

	set, err := s.h.Recommend.Handle(r.Context(), selection, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, set)
}
