package mocks

import (
	"context"
	"sort"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// RelationalDB is a mock implementation of ports.RelationalDB.
type RelationalDB struct {
	Reviews map[string]entities.Review
	Err     error

	// Call tracking
	SaveReviewsCallCount int
	LastQuery            entities.ReviewQuery
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Reviews: make(map[string]entities.Review),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// SaveReviews stores reviews by key.
func (m *RelationalDB) SaveReviews(_ context.Context, reviews []entities.Review) error {
	m.SaveReviewsCallCount++
	if m.Err != nil {
		return m.Err
	}
	for _, r := range reviews {
		m.Reviews[r.Key()] = r
	}
	return nil
}

// FindReviews filters stored reviews the way the SQLite store does.
func (m *RelationalDB) FindReviews(_ context.Context, q entities.ReviewQuery) ([]entities.Review, error) {
	m.LastQuery = q
	if m.Err != nil {
		return nil, m.Err
	}

	var result []entities.Review
	for _, r := range m.sorted() {
		if r.GameID != q.GameID {
			continue
		}
		if q.Sentiment != "" && r.Sentiment != q.Sentiment {
			continue
		}
		if q.Rating != nil && int(r.Rating) != *q.Rating {
			continue
		}
		result = append(result, r)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LabelProba > result[j].LabelProba
	})
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

// FindReviewsByIDs returns the stored reviews with the given IDs.
func (m *RelationalDB) FindReviewsByIDs(_ context.Context, ids []string) ([]entities.Review, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Review
	for _, id := range ids {
		if r, ok := m.Reviews[id]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}

// ListReviews returns stored reviews ordered by key.
func (m *RelationalDB) ListReviews(_ context.Context, limit, offset int) ([]entities.Review, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	all := m.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// CountReviews counts stored reviews of a game, or all when gameID is 0.
func (m *RelationalDB) CountReviews(_ context.Context, gameID int64) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	n := 0
	for _, r := range m.Reviews {
		if gameID == 0 || r.GameID == gameID {
			n++
		}
	}
	return n, nil
}

// CountBySentiment counts stored reviews of a game per sentiment.
func (m *RelationalDB) CountBySentiment(_ context.Context, gameID int64) (map[entities.Sentiment]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	counts := make(map[entities.Sentiment]int)
	for _, r := range m.Reviews {
		if r.GameID == gameID {
			counts[r.Sentiment]++
		}
	}
	return counts, nil
}

func (m *RelationalDB) sorted() []entities.Review {
	result := make([]entities.Review, 0, len(m.Reviews))
	for _, r := range m.Reviews {
		result = append(result, r)
	}
	// Sort by key for deterministic test results
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key() < result[j].Key()
	})
	return result
}
