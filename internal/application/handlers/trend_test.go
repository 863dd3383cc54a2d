package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

func newTrendHandler(t *testing.T) *TrendHandler {
	store, _ := newStore(t)
	return NewTrendHandler(services.NewTrendService(store))
}

func TestParseTrendChart(t *testing.T) {
	tests := []struct {
		input    string
		expected TrendChart
		wantErr  bool
	}{
		{input: "ratings", expected: ChartRatings},
		{input: " Genres ", expected: ChartGenres},
		{input: "COMPLEXITY", expected: ChartComplexity},
		{input: "categories", expected: ChartCategories},
		{input: "pie", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			chart, err := ParseTrendChart(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownChart))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, chart)
		})
	}
}

func TestTrendHandler_Ratings(t *testing.T) {
	data, err := newTrendHandler(t).Handle(t.Context(), DefaultTrendRequest(ChartRatings))
	require.NoError(t, err)

	ratings, ok := data.([]entities.YearRating)
	require.True(t, ok)
	years := make([]int, 0, len(ratings))
	for _, r := range ratings {
		years = append(years, r.Year)
	}
	assert.Equal(t, []int{2007, 2015, 2017, 2018}, years)
}

func TestTrendHandler_Complexity(t *testing.T) {
	data, err := newTrendHandler(t).Handle(t.Context(), DefaultTrendRequest(ChartComplexity))
	require.NoError(t, err)

	points, ok := data.([]entities.ComplexityPoint)
	require.True(t, ok)
	ids := make([]int64, 0, len(points))
	for _, p := range points {
		ids = append(ids, p.GameID)
	}
	assert.Equal(t, []int64{1, 2, 4}, ids, "Gloomhaven has too few votes")
}

func TestTrendHandler_GenresAndCategories(t *testing.T) {
	handler := newTrendHandler(t)

	data, err := handler.Handle(t.Context(), DefaultTrendRequest(ChartGenres))
	require.NoError(t, err)
	assert.IsType(t, []entities.GenreTierCount{}, data)

	req := DefaultTrendRequest(ChartCategories)
	req.MinTotal = 1
	data, err = handler.Handle(t.Context(), req)
	require.NoError(t, err)

	heatmap, ok := data.(*entities.CategoryHeatmap)
	require.True(t, ok)
	assert.Equal(t, []string{"Economic"}, heatmap.Categories)
}

func TestTrendHandler_Errors(t *testing.T) {
	handler := newTrendHandler(t)

	_, err := handler.Handle(t.Context(), TrendRequest{Chart: "pie"})
	assert.ErrorIs(t, err, ErrUnknownChart)

	req := DefaultTrendRequest(ChartComplexity)
	req.MinVotes = -1
	_, err = handler.Handle(t.Context(), req)
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}
