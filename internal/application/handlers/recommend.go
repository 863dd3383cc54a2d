package handlers

import (
	"context"
	"fmt"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
)

// RecommendHandler handles similar-game recommendation requests.
type RecommendHandler struct {
	service *services.RecommendationService
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(service *services.RecommendationService) *RecommendHandler {
	return &RecommendHandler{
		service: service,
	}
}

// Handle recommends games similar to the selection, which may be a BGG ID,
// a name or an "<id>: <name>" label.
func (h *RecommendHandler) Handle(ctx context.Context, selection string, opts services.RecommendOptions) (*entities.RecommendationSet, error) {
	set, err := h.service.Recommend(ctx, selection, opts)
	if err != nil {
		return nil, fmt.Errorf("recommending games like %q: %w", selection, err)
	}
	return set, nil
}
