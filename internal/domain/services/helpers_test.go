package services

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/mocks"
)

type gameRow struct {
	id     int64
	name   string
	year   int
	family string
	vals   map[string]entities.Value
}

func num(v float64) entities.Value { return entities.Number(v) }

func on() entities.Value { return entities.Category("1") }

// newCatalog builds a snapshot from rows; every cat_ key becomes a resolved category column.
func newCatalog(t *testing.T, rows ...gameRow) *entities.Catalog {
	t.Helper()

	var cols []string
	for _, r := range rows {
		for name := range r.vals {
			if strings.HasPrefix(name, entities.DefaultCategoryPrefix) && !slices.Contains(cols, name) {
				cols = append(cols, name)
			}
		}
	}
	slices.Sort(cols)
	schema := entities.DefaultSchema().Resolve(cols)

	games := make([]entities.Game, 0, len(rows))
	for _, r := range rows {
		attrs := make([]entities.Value, schema.NumFeatures())
		for name, v := range r.vals {
			idx, ok := schema.FeatureIndex(name)
			require.True(t, ok, "unknown feature %s", name)
			attrs[idx] = v
		}
		games = append(games, entities.Game{ID: r.id, Name: r.name, Year: r.year, Rank: len(games) + 1, FamilyKey: r.family, Attrs: attrs})
	}

	c, err := entities.NewCatalog(schema, games, "test")
	require.NoError(t, err)
	return c
}

// rankedGames is a small rank-ordered catalog covering every trend view.
func rankedGames(t *testing.T) *entities.Catalog {
	t.Helper()
	return newCatalog(t,
		gameRow{id: 1, name: "Brass", year: 2018, family: "Brass", vals: map[string]entities.Value{
			entities.AttrRating: num(8.6), entities.AttrComplexity: num(3.87), entities.AttrVotes: num(40000),
			entities.AttrMinPlayers: num(2), entities.AttrMaxPlayers: num(4),
			"strategygames": on(), "cat_Economic": on(), "cat_Industry / Manufacturing": on(),
		}},
		gameRow{id: 2, name: "Pandemic", year: 2015, vals: map[string]entities.Value{
			entities.AttrRating: num(8.5), entities.AttrComplexity: num(2.8349), entities.AttrVotes: num(50000),
			entities.AttrMinPlayers: num(2), entities.AttrMaxPlayers: num(4),
			"strategygames": on(), "thematic": on(), "cat_Medical": on(),
		}},
		gameRow{id: 3, name: "Gloomhaven", year: 2017, vals: map[string]entities.Value{
			entities.AttrRating: num(8.7), entities.AttrComplexity: num(3.9), entities.AttrVotes: num(500),
			entities.AttrMinPlayers: num(1), entities.AttrMaxPlayers: num(4),
			"thematic": on(), "cat_Fantasy": on(),
		}},
		gameRow{id: 4, name: "Old Game", year: 1995, vals: map[string]entities.Value{
			entities.AttrRating: num(7.1), entities.AttrComplexity: num(2.3), entities.AttrVotes: num(100000),
			entities.AttrMinPlayers: num(3), entities.AttrMaxPlayers: num(4),
			"familygames": on(), "cat_Economic": on(),
		}},
		gameRow{id: 5, name: "Unrated", year: 2018, vals: map[string]entities.Value{
			"cat_Economic": on(),
		}},
		gameRow{id: 6, name: "Brass: Lancashire", year: 2007, family: "brass", vals: map[string]entities.Value{
			entities.AttrRating: num(7.9), entities.AttrComplexity: num(3.2), entities.AttrVotes: num(20000),
			entities.AttrMinPlayers: num(2), entities.AttrMaxPlayers: num(4),
			"strategygames": on(), "cat_Economic": on(), "cat_Industry / Manufacturing": on(),
		}},
	)
}

// clock is a settable time source for the catalog store.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newStore(c *entities.Catalog, ttl time.Duration) (*CatalogStore, *mocks.CatalogSource, *clock) {
	source := &mocks.CatalogSource{Catalog: c}
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewCatalogStore(source, ttl)
	store.now = clk.now
	return store, source, clk
}
