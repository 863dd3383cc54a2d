package handlers

import (
	"context"
	"fmt"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
)

// QueryHandler handles semantic review search.
type QueryHandler struct {
	indexService *services.ReviewIndexService
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(indexService *services.ReviewIndexService) *QueryHandler {
	return &QueryHandler{
		indexService: indexService,
	}
}

// QueryResult contains the result of a query.
type QueryResult struct {
	Query   string            `json:"query"`
	GameID  int64             `json:"bgg_id,omitempty"`
	Reviews []entities.Review `json:"reviews"`
}

// Handle searches reviews matching the query, across all games when gameID is 0.
func (h *QueryHandler) Handle(ctx context.Context, query string, gameID int64, limit int) (*QueryResult, error) {
	reviews, err := h.indexService.Search(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("searching reviews: %w", err)
	}

	return &QueryResult{
		Query:   query,
		GameID:  gameID,
		Reviews: reviews,
	}, nil
}

// HandleIndex embeds every stored review into the vector index.
func (h *QueryHandler) HandleIndex(ctx context.Context) (int, error) {
	n, err := h.indexService.IndexAll(ctx)
	if err != nil {
		return n, fmt.Errorf("indexing reviews: %w", err)
	}
	return n, nil
}
