package handlers

import (
	"context"
	"fmt"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
)

// ReviewHandler handles review listing for a game.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// ReviewList is a page of reviews with the per-sentiment totals of the game.
type ReviewList struct {
	Query   entities.ReviewQuery    `json:"query"`
	Summary *services.ReviewSummary `json:"summary"`
	Reviews []entities.Review       `json:"reviews"`
}

// Handle lists the reviews of a game matching the query.
func (h *ReviewHandler) Handle(ctx context.Context, q entities.ReviewQuery) (*ReviewList, error) {
	reviews, err := h.service.Reviews(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	summary, err := h.service.Summary(ctx, q.GameID)
	if err != nil {
		return nil, fmt.Errorf("summarizing reviews: %w", err)
	}

	return &ReviewList{
		Query:   q,
		Summary: summary,
		Reviews: reviews,
	}, nil
}
