package entities

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Catalog is an immutable snapshot of the game table.
// It is built once per load and shared by reference between requests;
// nothing in the domain mutates its rows.
type Catalog struct {
	schema   *Schema
	games    []Game
	byID     map[int64]int
	byName   map[string]int
	source   string
	loadedAt time.Time
}

// NewCatalog builds a catalog snapshot. Game IDs must be unique and every game must
// carry one value per schema feature.
func NewCatalog(schema *Schema, games []Game, source string) (*Catalog, error) {
	if schema == nil {
		schema = DefaultSchema()
	}

	c := &Catalog{
		schema:   schema,
		games:    make([]Game, len(games)),
		byID:     make(map[int64]int, len(games)),
		byName:   make(map[string]int, len(games)),
		source:   source,
		loadedAt: time.Now(),
	}
	for i, g := range games {
		g.Attrs = slices.Clone(g.Attrs)
		c.games[i] = g
	}

	for i := range c.games {
		g := &c.games[i]
		if _, dup := c.byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %d", g.ID)
		}
		if len(g.Attrs) != schema.NumFeatures() {
			return nil, fmt.Errorf("game %d: %d attribute values, schema has %d features", g.ID, len(g.Attrs), schema.NumFeatures())
		}
		c.byID[g.ID] = i

		// First occurrence wins: the snapshot is rank ordered.
		name := NormalizeName(g.Name)
		if _, seen := c.byName[name]; !seen && name != "" {
			c.byName[name] = i
		}
	}

	return c, nil
}

// Schema returns the resolved schema of the snapshot.
func (c *Catalog) Schema() *Schema {
	return c.schema
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	return len(c.games)
}

// At returns the game at position i. The returned value shares Attrs with the
// snapshot and must be treated as read-only.
func (c *Catalog) At(i int) Game {
	return c.games[i]
}

// Source describes where the snapshot was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// LoadedAt returns when the snapshot was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// IndexOf returns the position of the game with the given ID.
func (c *Catalog) IndexOf(id int64) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// IndexByName returns the position of the first game with the given name (case-insensitive).
func (c *Catalog) IndexByName(name string) (int, bool) {
	i, ok := c.byName[NormalizeName(name)]
	return i, ok
}

// Value returns the value of a feature for the game at position i.
func (c *Catalog) Value(i int, attr string) Value {
	idx, ok := c.schema.FeatureIndex(attr)
	if !ok {
		return Missing()
	}
	return c.games[i].Attrs[idx]
}

// Lookup resolves a selection to a catalog position. A selection is a BoardGameGeek
// ID, a game name, or the "<id>: <name>" label produced by Game.Label.
func (c *Catalog) Lookup(selection string) (int, error) {
	sel := strings.TrimSpace(selection)
	if sel == "" {
		return 0, ErrInvalidSelection
	}

	if head, tail, ok := strings.Cut(sel, ":"); ok {
		if id, err := strconv.ParseInt(strings.TrimSpace(head), 10, 64); err == nil {
			if i, found := c.byID[id]; found {
				name := NormalizeName(tail)
				if name == "" || name == NormalizeName(c.games[i].Name) {
					return i, nil
				}
			}
		}
	} else if id, err := strconv.ParseInt(sel, 10, 64); err == nil {
		if i, found := c.byID[id]; found {
			return i, nil
		}
	}

	if i, ok := c.IndexByName(sel); ok {
		return i, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrGameNotFound, sel)
}

// LookupID resolves a BoardGameGeek ID to a catalog position.
func (c *Catalog) LookupID(id int64) (int, error) {
	i, ok := c.byID[id]
	if !ok {
		return 0, fmt.Errorf("%w: id %d", ErrGameNotFound, id)
	}
	return i, nil
}
