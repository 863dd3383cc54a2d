package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andyphuawc114/boardgamewhiz/internal/application/handlers"
)

// trend serves one chart; it accepts from, to, min_votes, top_n and
// min_total query parameters, defaulting to the dashboard's values.
func (s *Server) trend(w http.ResponseWriter, r *http.Request) {
	chart, err := handlers.ParseTrendChart(chi.URLParam(r, "chart"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	req := handlers.DefaultTrendRequest(chart)
	for name, dst := range map[string]*int{
		"from":      &req.Years.From,
		"to":        &req.Years.To,
		"min_votes": &req.MinVotes,
		"top_n":     &req.TopN,
		"min_total": &req.MinTotal,
	} {
		if *dst, err = intParamOr(r, name, *dst); err != nil {
			writeError(w, r, err)
			return
		}
	}

	data, err := s.h.Trend.Handle(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, data)
}
