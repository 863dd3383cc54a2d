// Package similarity finds the games most similar to a selected one.
//
// A request runs three stages over an immutable catalog snapshot:
//
//	BuildPool  -> candidate rows after family exclusion and user constraints
//	Distances  -> mixed-type distance from the query to every pool row
//	Rank       -> ascending distance, query removed, top K
//
// Nothing here performs I/O or keeps state between requests, so a Recommender
// may be shared by concurrent callers.
package similarity

import (
	"fmt"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// Result is the outcome of one recommendation request.
type Result struct {
	Query           entities.Game
	Recommendations []entities.Recommendation
	PoolSize        int
	Metric          MetricKind
}

// Recommender runs the filter, distance and rank stages.
type Recommender struct {
	engine *Engine
	k      int
}

// NewRecommender creates a recommender returning up to k games (DefaultK if k <= 0).
func NewRecommender(metric Metric, k int) *Recommender {
	if k <= 0 {
		k = DefaultK
	}
	return &Recommender{
		engine: NewEngine(metric),
		k:      k,
	}
}

// K returns the configured result size.
func (r *Recommender) K() int {
	return r.k
}

// Metric returns the configured metric kind.
func (r *Recommender) Metric() MetricKind {
	return r.engine.Metric().Kind()
}

// Recommend resolves the selection and ranks the games most similar to it.
// An unknown selection fails with entities.ErrGameNotFound before any filtering.
func (r *Recommender) Recommend(c *entities.Catalog, selection string, cons entities.Constraints) (*Result, error) {
	if c == nil || c.Len() == 0 {
		return nil, entities.ErrEmptyCatalog
	}

	query, err := c.Lookup(selection)
	if err != nil {
		return nil, err
	}

	return r.RecommendAt(c, query, cons)
}

// RecommendAt ranks the games most similar to the game at catalog position query.
func (r *Recommender) RecommendAt(c *entities.Catalog, query int, cons entities.Constraints) (*Result, error) {
	if c == nil || c.Len() == 0 {
		return nil, entities.ErrEmptyCatalog
	}
	if query < 0 || query >= c.Len() {
		return nil, fmt.Errorf("%w: position %d", entities.ErrGameNotFound, query)
	}

	pool := BuildPool(c, query, cons)
	result := &Result{
		Query:           c.At(query),
		Recommendations: []entities.Recommendation{},
		PoolSize:        pool.Candidates(),
		Metric:          r.Metric(),
	}
	if pool.Candidates() == 0 {
		return result, nil
	}

	distances := r.engine.Distances(pool)
	result.Recommendations = Rank(pool, distances, r.k)
	return result, nil
}
