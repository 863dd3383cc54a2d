package similarity

import (
	"cmp"
	"slices"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// DefaultK is the number of recommendations returned when none is configured.
const DefaultK = 10

// Rank orders the pool by ascending distance and returns at most k recommendations.
// Ties keep catalog insertion order. The query game is dropped by identity wherever
// it lands, including when it was re-appended to the pool.
func Rank(p *Pool, distances []float64, k int) []entities.Recommendation {
	if k <= 0 {
		k = DefaultK
	}

	c := p.Catalog()
	queryID := c.At(p.query).ID

	order := make([]int, len(p.rows))
	for j := range order {
		order[j] = j
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if d := cmp.Compare(distances[a], distances[b]); d != 0 {
			return d
		}
		return cmp.Compare(p.rows[a], p.rows[b])
	})

	out := make([]entities.Recommendation, 0, min(k, p.Candidates()))
	for _, j := range order {
		if len(out) == k {
			break
		}
		g := c.At(p.rows[j])
		if g.ID == queryID {
			continue
		}
		out = append(out, entities.Recommendation{
			GameID:     g.ID,
			Name:       g.Name,
			Distance:   distances[j],
			Similarity: 1 - distances[j],
		})
	}
	return out
}
