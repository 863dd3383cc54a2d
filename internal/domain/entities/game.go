package entities

import (
	"fmt"
	"strings"
)

// BGGLinkTemplate builds the BoardGameGeek page of a game from its ID.
const BGGLinkTemplate = "https://boardgamegeek.com/boardgame/%d"

// Game is one catalog row.
type Game struct {
	ID        int64  `json:"bgg_id"`
	Name      string `json:"name"`
	Year      int    `json:"year,omitempty"` // 0 when unknown
	Rank      int    `json:"rank,omitempty"`
	FamilyKey string `json:"family,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Image     string `json:"image,omitempty"`

	// Attrs holds the feature values, aligned with Schema.Features().
	Attrs []Value `json:"-"`
}

// Label returns the "<id>: <name>" selection label used by the dashboard.
func (g Game) Label() string {
	return fmt.Sprintf("%d: %s", g.ID, g.Name)
}

// Link returns the BoardGameGeek URL of the game.
func (g Game) Link() string {
	return fmt.Sprintf(BGGLinkTemplate, g.ID)
}

// HasFamily reports whether the game belongs to a family.
func (g Game) HasFamily() bool {
	return !IsBlankFamily(g.FamilyKey)
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsBlankFamily reports whether a family key means "no family".
func IsBlankFamily(key string) bool {
	switch NormalizeName(key) {
	case "", "0", "none", "nan", "null":
		return true
	}
	return false
}

// RankedGame is a catalog row as listed by the top games view.
type RankedGame struct {
	Game
	AvgRating float64 `json:"avg_rating"`
	Link      string  `json:"link"`
}
