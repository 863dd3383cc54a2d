package services

import (
	"context"
	"fmt"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

// DefaultReviewLimit is the number of reviews shown for a game.
const DefaultReviewLimit = 10

// ReviewSummary counts the reviews of a game.
type ReviewSummary struct {
	GameID      int64                      `json:"bgg_id"`
	Total       int                        `json:"total"`
	BySentiment map[entities.Sentiment]int `json:"by_sentiment"`
}

// ReviewService reads classified reviews from the review store.
type ReviewService struct {
	db ports.RelationalDB
}

// NewReviewService creates a new review service.
func NewReviewService(db ports.RelationalDB) *ReviewService {
	return &ReviewService{db: db}
}

// Reviews returns the most confidently classified reviews of a game matching the query.
func (s *ReviewService) Reviews(ctx context.Context, q entities.ReviewQuery) ([]entities.Review, error) {
	if err := validation.ValidateStruct(q); err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		q.Limit = DefaultReviewLimit
	}

	reviews, err := s.db.FindReviews(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("finding reviews of game %d: %w", q.GameID, err)
	}
	if reviews == nil {
		reviews = []entities.Review{}
	}
	return reviews, nil
}

// Summary counts the reviews of a game per sentiment.
func (s *ReviewService) Summary(ctx context.Context, gameID int64) (*ReviewSummary, error) {
	counts, err := s.db.CountBySentiment(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("counting reviews of game %d: %w", gameID, err)
	}

	summary := &ReviewSummary{GameID: gameID, BySentiment: counts}
	for _, n := range counts {
		summary.Total += n
	}
	return summary, nil
}

// Count returns the number of stored reviews.
func (s *ReviewService) Count(ctx context.Context) (int, error) {
	n, err := s.db.CountReviews(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("counting reviews: %w", err)
	}
	return n, nil
}
