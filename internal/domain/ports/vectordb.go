package ports

import (
	"context"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// VectorDB defines the interface for the review embedding index.
type VectorDB interface {
	// Save stores a review with its embedding.
	Save(ctx context.Context, review entities.Review) error

	// SaveBatch stores multiple reviews.
	SaveBatch(ctx context.Context, reviews []entities.Review) error

	// Search performs a semantic search and returns similar reviews.
	Search(ctx context.Context, embedding []float32, limit int) ([]entities.Review, error)

	// SearchByGame performs a semantic search restricted to the reviews of one game.
	SearchByGame(ctx context.Context, embedding []float32, gameID int64, limit int) ([]entities.Review, error)

	// Delete removes a review by its ID.
	Delete(ctx context.Context, id string) error

	// Count returns the number of indexed reviews.
	Count(ctx context.Context) (uint64, error)
}
