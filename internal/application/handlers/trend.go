package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

// TrendChart names one of the trend views.
type TrendChart string

// Trend charts.
const (
	ChartRatings    TrendChart = "ratings"
	ChartGenres     TrendChart = "genres"
	ChartComplexity TrendChart = "complexity"
	ChartCategories TrendChart = "categories"
)

// TrendCharts lists the charts in display order.
var TrendCharts = []TrendChart{ChartRatings, ChartGenres, ChartComplexity, ChartCategories}

// ErrUnknownChart is returned for a chart name outside TrendCharts.
var ErrUnknownChart = errors.New("unknown trend chart")

// ParseTrendChart matches a chart name case-insensitively.
func ParseTrendChart(s string) (TrendChart, error) {
	name := TrendChart(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range TrendCharts {
		if c == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %v)", ErrUnknownChart, s, TrendCharts)
}

// TrendRequest selects a chart and its parameters. Parameters a chart does
// not use are ignored.
type TrendRequest struct {
	Chart    TrendChart
	Years    services.YearRange
	MinVotes int `validate:"gte=0"`
	TopN     int `validate:"gte=0"`
	MinTotal int `validate:"gte=0"`
}

// DefaultTrendRequest returns the request the dashboard issues for a chart.
func DefaultTrendRequest(chart TrendChart) TrendRequest {
	return TrendRequest{
		Chart:    chart,
		Years:    services.DefaultYearRange,
		MinVotes: services.DefaultMinVotes,
		TopN:     services.DefaultHeatmapTopN,
		MinTotal: services.DefaultHeatmapMinTotal,
	}
}

// TrendHandler serves the chart data of the trend views.
type TrendHandler struct {
	service *services.TrendService
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(service *services.TrendService) *TrendHandler {
	return &TrendHandler{
		service: service,
	}
}

// Handle computes the requested chart. The result is JSON-ready chart data.
func (h *TrendHandler) Handle(ctx context.Context, req TrendRequest) (any, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}

	var (
		data any
		err  error
	)
	switch req.Chart {
	case ChartRatings:
		data, err = h.service.AverageRatingByYear(ctx, req.Years)
	case ChartGenres:
		data, err = h.service.GenreCountsByRatingTier(ctx)
	case ChartComplexity:
		data, err = h.service.ComplexityVsRating(ctx, req.Years, req.MinVotes)
	case ChartCategories:
		data, err = h.service.CategoryHeatmap(ctx, req.Years, req.TopN, req.MinTotal)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownChart, req.Chart)
	}
	if err != nil {
		return nil, fmt.Errorf("computing %s trend: %w", req.Chart, err)
	}
	return data, nil
}
