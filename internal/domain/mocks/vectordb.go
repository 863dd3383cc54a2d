package mocks

import (
	"context"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// VectorDB is a mock implementation of ports.VectorDB.
type VectorDB struct {
	Reviews []entities.Review
	Err     error

	// Collection errors (separate from Err for fine-grained control)
	EnsureCollectionErr error
	DeleteCollectionErr error

	// Call tracking
	SaveBatchCallCount        int
	SaveBatchLastReviews      []entities.Review
	EnsureCollectionCallCount int
	DeleteCollectionCallCount int
	LastSearchGameID          int64
	LastSearchLimit           int
}

// EnsureCollection creates the collection if it doesn't exist.
func (m *VectorDB) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	m.EnsureCollectionCallCount++
	return m.EnsureCollectionErr
}

// DeleteCollection removes the collection and all its data.
func (m *VectorDB) DeleteCollection(ctx context.Context) error {
	m.DeleteCollectionCallCount++
	return m.DeleteCollectionErr
}

// Save stores a single review.
func (m *VectorDB) Save(ctx context.Context, review entities.Review) error {
	return m.SaveBatch(ctx, []entities.Review{review})
}

// SaveBatch stores multiple reviews.
func (m *VectorDB) SaveBatch(ctx context.Context, reviews []entities.Review) error {
	m.SaveBatchCallCount++
	m.SaveBatchLastReviews = reviews
	if m.Err != nil {
		return m.Err
	}
	m.Reviews = append(m.Reviews, reviews...)
	return nil
}

// Search returns the first stored reviews.
func (m *VectorDB) Search(ctx context.Context, embedding []float32, limit int) ([]entities.Review, error) {
	m.LastSearchLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > len(m.Reviews) {
		return m.Reviews, nil
	}
	return m.Reviews[:limit], nil
}

// SearchByGame returns the first stored reviews of a game.
func (m *VectorDB) SearchByGame(ctx context.Context, embedding []float32, gameID int64, limit int) ([]entities.Review, error) {
	m.LastSearchGameID = gameID
	m.LastSearchLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	var filtered []entities.Review
	for i := range m.Reviews {
		if m.Reviews[i].GameID == gameID {
			filtered = append(filtered, m.Reviews[i])
		}
	}
	if limit > len(filtered) {
		return filtered, nil
	}
	return filtered[:limit], nil
}

// Delete removes a review by ID.
func (m *VectorDB) Delete(ctx context.Context, id string) error {
	return m.Err
}

// Count returns the number of stored reviews.
func (m *VectorDB) Count(ctx context.Context) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return uint64(len(m.Reviews)), nil
}

// Close closes the connection.
func (m *VectorDB) Close() error {
	return nil
}
