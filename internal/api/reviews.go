package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// gameReviews accepts sentiment, rating and limit query parameters.
func (s *Server) gameReviews(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDParam(r, "selection")
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := entities.ReviewQuery{GameID: gameID}
	if raw := strings.TrimSpace(r.URL.Query().Get("sentiment")); raw != "" {
		if q.Sentiment, err = entities.ParseSentiment(raw); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", errBadParam, err))
			return
		}
	}
	if q.Rating, err = intParam(r, "rating"); err != nil {
		writeError(w, r, err)
		return
	}
	if q.Limit, err = intParamOr(r, "limit", 0); err != nil {
		writeError(w, r, err)
		return
	}

	list, err := s.h.Review.Handle(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, list)
}

// searchReviews accepts q, bgg_id and limit query parameters.
func (s *Server) searchReviews(w http.ResponseWriter, r *http.Request) {
	if s.h.Query == nil {
		writeError(w, r, errSearchDisabled)
		return
	}

	query := r.URL.Query().Get("q")
	gameID, err := intParamOr(r, "bgg_id", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := intParamOr(r, "limit", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if limit < 0 || gameID < 0 {
		writeError(w, r, fmt.Errorf("%w: bgg_id and limit must not be negative", errBadParam))
		return
	}

	result, err := s.h.Query.Handle(r.Context(), query, int64(gameID), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, result)
}
