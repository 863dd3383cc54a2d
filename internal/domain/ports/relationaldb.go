package ports

import (
	"context"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// RelationalDB defines the interface for the review store.
// Reviews are looked up by game, sentiment and rating, which a relational
// store serves directly; semantic search over comments goes through VectorDB.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveReviews inserts or replaces reviews by ID.
	SaveReviews(ctx context.Context, reviews []entities.Review) error

	// FindReviews returns the reviews of one game matching the query,
	// ordered by label probability descending.
	FindReviews(ctx context.Context, q entities.ReviewQuery) ([]entities.Review, error)

	// FindReviewsByIDs returns the reviews with the given IDs, in no particular order.
	FindReviewsByIDs(ctx context.Context, ids []string) ([]entities.Review, error)

	// ListReviews lists all reviews with pagination, ordered by ID.
	ListReviews(ctx context.Context, limit, offset int) ([]entities.Review, error)

	// CountReviews returns the number of reviews of a game, or of all games when gameID is 0.
	CountReviews(ctx context.Context, gameID int64) (int, error)

	// CountBySentiment returns the number of reviews of a game per sentiment.
	CountBySentiment(ctx context.Context, gameID int64) (map[entities.Sentiment]int, error)
}
