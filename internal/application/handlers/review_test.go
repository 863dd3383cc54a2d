package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/mocks"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

func seededDB() *mocks.RelationalDB {
	db := mocks.NewRelationalDB()
	for _, r := range []entities.Review{
		{ID: "a", GameID: 13, Rating: 9, Comment: "Trading is great", Sentiment: entities.SentimentPositive, LabelProba: 0.7},
		{ID: "b", GameID: 13, Rating: 8, Comment: "Loved it", Sentiment: entities.SentimentPositive, LabelProba: 0.95},
		{ID: "c", GameID: 13, Rating: 3, Comment: "Too long", Sentiment: entities.SentimentNegative, LabelProba: 0.8},
		{ID: "d", GameID: 822, Rating: 7, Comment: "Relaxing", Sentiment: entities.SentimentNeutralPositive, LabelProba: 0.6},
	} {
		db.Reviews[r.ID] = r
	}
	return db
}

func TestReviewHandler_Handle(t *testing.T) {
	handler := NewReviewHandler(services.NewReviewService(seededDB()))

	list, err := handler.Handle(t.Context(), entities.ReviewQuery{GameID: 13, Sentiment: entities.SentimentPositive})
	require.NoError(t, err)

	require.Len(t, list.Reviews, 2)
	assert.Equal(t, "b", list.Reviews[0].ID)
	assert.Equal(t, "a", list.Reviews[1].ID)
	assert.Equal(t, 3, list.Summary.Total)
	assert.Equal(t, 2, list.Summary.BySentiment[entities.SentimentPositive])
	assert.Equal(t, 1, list.Summary.BySentiment[entities.SentimentNegative])
}

func TestReviewHandler_Handle_RatingFilter(t *testing.T) {
	handler := NewReviewHandler(services.NewReviewService(seededDB()))

	list, err := handler.Handle(t.Context(), entities.ReviewQuery{GameID: 13, Rating: entities.IntPtr(3)})
	require.NoError(t, err)

	require.Len(t, list.Reviews, 1)
	assert.Equal(t, "c", list.Reviews[0].ID)
}

func TestReviewHandler_Handle_Errors(t *testing.T) {
	handler := NewReviewHandler(services.NewReviewService(seededDB()))

	_, err := handler.Handle(t.Context(), entities.ReviewQuery{})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	db := mocks.NewRelationalDB()
	db.Err = errors.New("database is locked")
	_, err = NewReviewHandler(services.NewReviewService(db)).Handle(t.Context(), entities.ReviewQuery{GameID: 13})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing reviews")
}
