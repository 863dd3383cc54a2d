package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

type row struct {
	id     int64
	name   string
	year   int
	family string
	vals   map[string]entities.Value
}

func num(v float64) entities.Value {
	return entities.Number(v)
}

func flag(on bool) entities.Value {
	if on {
		return entities.Category("1")
	}
	return entities.Category("0")
}

// newCatalog builds a snapshot whose feature values come from each row's map;
// features a row does not mention are missing.
func newCatalog(t *testing.T, schema *entities.Schema, rows ...row) *entities.Catalog {
	t.Helper()

	games := make([]entities.Game, 0, len(rows))
	for _, r := range rows {
		attrs := make([]entities.Value, schema.NumFeatures())
		for name, v := range r.vals {
			idx, ok := schema.FeatureIndex(name)
			require.True(t, ok, "unknown feature %s", name)
			attrs[idx] = v
		}
		games = append(games, entities.Game{
			ID:        r.id,
			Name:      r.name,
			Year:      r.year,
			FamilyKey: r.family,
			Attrs:     attrs,
		})
	}

	c, err := entities.NewCatalog(schema, games, "test")
	require.NoError(t, err)
	return c
}

// boardGames returns a catalog in which game 2 ("Brass Clone") is the nearest
// neighbour of game 1 ("Brass") on every axis.
func boardGames() []row {
	return []row{
		{id: 1, name: "Brass", year: 2018, vals: map[string]entities.Value{
			entities.AttrComplexity: num(3.0), entities.AttrMinPlayers: num(2), entities.AttrMaxPlayers: num(4),
			entities.AttrMaxPlaytime: num(90), entities.AttrRating: num(7.5), entities.AttrVotes: num(1000),
			"strategygames": flag(true), "thematic": flag(false),
		}},
		{id: 2, name: "Brass Clone", year: 2019, vals: map[string]entities.Value{
			entities.AttrComplexity: num(3.1), entities.AttrMinPlayers: num(2), entities.AttrMaxPlayers: num(4),
			entities.AttrMaxPlaytime: num(90), entities.AttrRating: num(7.6), entities.AttrVotes: num(1100),
			"strategygames": flag(true), "thematic": flag(false),
		}},
		{id: 3, name: "Party Time", year: 2005, vals: map[string]entities.Value{
			entities.AttrComplexity: num(1.5), entities.AttrMinPlayers: num(3), entities.AttrMaxPlayers: num(8),
			entities.AttrMaxPlaytime: num(30), entities.AttrRating: num(6.0), entities.AttrVotes: num(500),
			"strategygames": flag(false), "thematic": flag(false),
		}},
		{id: 4, name: "Twilight War", year: 2012, vals: map[string]entities.Value{
			entities.AttrComplexity: num(4.5), entities.AttrMinPlayers: num(1), entities.AttrMaxPlayers: num(2),
			entities.AttrMaxPlaytime: num(180), entities.AttrRating: num(8.2), entities.AttrVotes: num(20000),
			"strategygames": flag(true), "thematic": flag(true),
		}},
		{id: 5, name: "Dungeon Romp", year: 2001, vals: map[string]entities.Value{
			entities.AttrComplexity: num(2.0), entities.AttrMinPlayers: num(2), entities.AttrMaxPlayers: num(6),
			entities.AttrMaxPlaytime: num(45), entities.AttrRating: num(5.5), entities.AttrVotes: num(200),
			"strategygames": flag(false), "thematic": flag(true),
		}},
	}
}

func ids(recs []entities.Recommendation) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.GameID
	}
	return out
}

// twoFeatureSchema declares two numeric features x and y with the given weights.
func twoFeatureSchema(t *testing.T, wx, wy float64) *entities.Schema {
	t.Helper()
	s, err := entities.NewSchema([]entities.Attribute{
		{Name: entities.ColID, Kind: entities.KindIdentity},
		{Name: "x", Kind: entities.KindNumeric, Weight: wx},
		{Name: "y", Kind: entities.KindNumeric, Weight: wy},
	})
	require.NoError(t, err)
	return s
}
