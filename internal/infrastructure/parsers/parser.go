// Package parsers reads game catalogs and reviews from CSV and JSON.
package parsers

import (
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// RawReview represents a review parsed from an external source before validation.
type RawReview struct {
	ID           string   `json:"id,omitempty"`
	GameID       int64    `json:"bgg_id"`
	GameName     string   `json:"name,omitempty"`
	User         string   `json:"user,omitempty"`
	Rating       *float64 `json:"rating,omitempty"` // Pointer to distinguish 0 from unset
	Comment      string   `json:"comment"`
	Sentiment    string   `json:"final_sentiment"`
	Subjectivity float64  `json:"subjectivity,omitempty"`
	LabelProba   float64  `json:"label_proba,omitempty"`
	LineNum      int      `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing reviews from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawReview, error)
}

// CatalogParser parses a game table into a catalog snapshot. The schema is
// resolved against the columns found in the input.
type CatalogParser interface {
	ParseCatalog(r io.Reader, schema *entities.Schema, source string) (*entities.Catalog, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."))
}

// CatalogForFormat returns the catalog parser for the given format.
func CatalogForFormat(format string) CatalogParser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv", "":
		return &CSVParser{}
	default:
		return nil
	}
}

// CatalogForFile returns the catalog parser based on file extension.
func CatalogForFile(filename string) CatalogParser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil
	}
	return CatalogForFormat(ext)
}

// isNull reports whether a cell means "no value".
func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "na", "n/a":
		return true
	}
	return false
}

// parseNumeric converts a cell to a numeric value. Non-finite numbers are missing.
func parseNumeric(s string) (entities.Value, error) {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return entities.Missing(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return entities.Missing(), err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return entities.Missing(), nil
	}
	return entities.Number(f), nil
}

// parseCategorical converts a cell to a category. Numeric cells are canonicalized
// so that "1", "1.0" and "1.00" are the same category.
func parseCategorical(s string) entities.Value {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return entities.Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return entities.Category(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return entities.Category(s)
}

// parseWhole converts a cell holding a whole number, possibly written as a float.
// Blank cells are 0.
func parseWhole(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return int64(f), nil
}
