package parsers

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// JSONParser parses catalogs and reviews from JSON format.
type JSONParser struct{}

// Parse reads a JSON array of reviews from the reader.
func (p *JSONParser) Parse(r io.Reader) ([]RawReview, error) {
	var reviews []RawReview

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&reviews); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range reviews {
		reviews[i].LineNum = i + 1
	}

	return reviews, nil
}

// ParseCatalog reads a JSON array of game objects keyed by column name.
func (p *JSONParser) ParseCatalog(r io.Reader, schema *entities.Schema, source string) (*entities.Catalog, error) {
	if schema == nil {
		schema = entities.DefaultSchema()
	}

	var rows []map[string]any
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	seen := make(map[string]bool)
	var columns []string
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	slices.Sort(columns)
	resolved := schema.Resolve(columns)

	games := make([]entities.Game, 0, len(rows))
	for i, row := range rows {
		cell := func(col string) string {
			return jsonCell(row[col])
		}
		g, err := buildGame(resolved, cell, i+1)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}

	return entities.NewCatalog(resolved, games, source)
}

// jsonCell renders a decoded JSON value as cell text.
func jsonCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
