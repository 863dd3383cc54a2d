package similarity

import "github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"

// Pool is the candidate set of one request: catalog positions in insertion order.
// The query row is always a member so that it takes part in range normalization.
type Pool struct {
	catalog    *entities.Catalog
	rows       []int
	query      int
	queryAt    int
	reappended bool
}

// BuildPool narrows the catalog to the rows eligible for comparison with the query.
//
// Other members of the query's family are always removed. The constraints are
// applied to every row; if the query row itself fails them it is appended at the
// end of the pool.
func BuildPool(c *entities.Catalog, query int, cons entities.Constraints) *Pool {
	q := c.At(query)
	excludeFamily := q.HasFamily()
	family := entities.NormalizeName(q.FamilyKey)

	p := &Pool{
		catalog: c,
		rows:    make([]int, 0, c.Len()),
		query:   query,
		queryAt: -1,
	}

	for i := 0; i < c.Len(); i++ {
		if i == query {
			if Accept(c, i, cons) {
				p.queryAt = len(p.rows)
				p.rows = append(p.rows, i)
			}
			continue
		}

		if excludeFamily {
			g := c.At(i)
			if entities.NormalizeName(g.FamilyKey) == family {
				continue
			}
		}

		if !Accept(c, i, cons) {
			continue
		}
		p.rows = append(p.rows, i)
	}

	if p.queryAt < 0 {
		p.queryAt = len(p.rows)
		p.rows = append(p.rows, query)
		p.reappended = true
	}

	return p
}

// Accept reports whether the game at position i satisfies the constraints.
// A game with an unknown year or player range fails a constraint on it;
// an unknown rating is tier 0 and unknown votes count as 0.
func Accept(c *entities.Catalog, i int, cons entities.Constraints) bool {
	g := c.At(i)

	if cons.MinYear != nil {
		if g.Year == 0 || g.Year < *cons.MinYear {
			return false
		}
	}

	if cons.PlayerCount != nil {
		lo := c.Value(i, entities.AttrMinPlayers)
		hi := c.Value(i, entities.AttrMaxPlayers)
		if !lo.Valid || !hi.Valid {
			return false
		}
		n := float64(*cons.PlayerCount)
		if n < lo.Num || n > hi.Num {
			return false
		}
	}

	if cons.MinRatingTier != nil {
		if entities.RatingTier(c.Value(i, entities.AttrRating)) < *cons.MinRatingTier {
			return false
		}
	}

	if cons.MinVotes != nil {
		votes := c.Value(i, entities.AttrVotes)
		n := 0.0
		if votes.Valid {
			n = votes.Num
		}
		if n < float64(*cons.MinVotes) {
			return false
		}
	}

	return true
}

// Len returns the number of rows including the query.
func (p *Pool) Len() int {
	return len(p.rows)
}

// Candidates returns the number of rows other than the query.
func (p *Pool) Candidates() int {
	return len(p.rows) - 1
}

// Rows returns the catalog positions of the pool, in pool order.
func (p *Pool) Rows() []int {
	return append([]int(nil), p.rows...)
}

// Query returns the catalog position of the query row.
func (p *Pool) Query() int {
	return p.query
}

// QueryAt returns the position of the query row inside the pool.
func (p *Pool) QueryAt() int {
	return p.queryAt
}

// Reappended reports whether the query row failed the constraints and was added back.
func (p *Pool) Reappended() bool {
	return p.reappended
}

// Catalog returns the snapshot the pool was built from.
func (p *Pool) Catalog() *entities.Catalog {
	return p.catalog
}
