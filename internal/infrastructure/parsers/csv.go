package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// CSVParser parses catalogs and reviews from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed reviews.
// Expected columns: bgg_id, comment, final_sentiment (or sentiment), and optionally
// id, name, user, rating, subjectivity, label_proba.
func (p *CSVParser) Parse(r io.Reader) ([]RawReview, error) {
	reader := csv.NewReader(r)

	_, colIndex, err := p.readHeader(reader, "bgg_id", "comment")
	if err != nil {
		return nil, err
	}
	if _, ok := colIndex["final_sentiment"]; !ok {
		if i, ok := colIndex["sentiment"]; ok {
			colIndex["final_sentiment"] = i
		} else {
			return nil, fmt.Errorf("missing required column: final_sentiment")
		}
	}

	var reviews []RawReview
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		review, err := p.parseReview(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

// ParseCatalog reads a game table. The header must contain the bgg_id column;
// feature columns absent from the header are missing for every game.
func (p *CSVParser) ParseCatalog(r io.Reader, schema *entities.Schema, source string) (*entities.Catalog, error) {
	if schema == nil {
		schema = entities.DefaultSchema()
	}

	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, colIndex, err := p.readHeader(reader, entities.ColID)
	if err != nil {
		return nil, err
	}

	resolved := schema.Resolve(header)

	var games []entities.Game
	lineNum := 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		cell := func(col string) string {
			return strings.TrimSpace(getColumn(record, colIndex, col))
		}
		g, err := buildGame(resolved, cell, lineNum)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}

	return entities.NewCatalog(resolved, games, source)
}

// readHeader reads and validates the CSV header row. It returns the cleaned
// column names in file order and the position of each name; a repeated name
// maps to its first column.
func (p *CSVParser) readHeader(reader *csv.Reader, required ...string) ([]string, map[string]int, error) {
	record, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}

	header := make([]string, len(record))
	colIndex := make(map[string]int, len(record))
	for i, col := range record {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		header[i] = col
		if _, dup := colIndex[col]; !dup {
			colIndex[col] = i
		}
	}

	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return header, colIndex, nil
}

// parseReview converts a CSV record to a RawReview.
func (p *CSVParser) parseReview(record []string, colIndex map[string]int, lineNum int) (RawReview, error) {
	review := RawReview{
		ID:        getColumn(record, colIndex, "id"),
		GameName:  getColumn(record, colIndex, "name"),
		User:      getColumn(record, colIndex, "user"),
		Comment:   getColumn(record, colIndex, "comment"),
		Sentiment: getColumn(record, colIndex, "final_sentiment"),
		LineNum:   lineNum,
	}

	idStr := getColumn(record, colIndex, "bgg_id")
	id, err := parseWhole(idStr)
	if err != nil {
		return RawReview{}, fmt.Errorf("line %d: invalid bgg_id %q", lineNum, idStr)
	}
	review.GameID = id

	for _, field := range []struct {
		col string
		dst *float64
	}{
		{"subjectivity", &review.Subjectivity},
		{"label_proba", &review.LabelProba},
	} {
		v, err := parseNumeric(getColumn(record, colIndex, field.col))
		if err != nil {
			return RawReview{}, fmt.Errorf("line %d: invalid %s value: %w", lineNum, field.col, err)
		}
		*field.dst = v.Num
	}

	ratingStr := getColumn(record, colIndex, "rating")
	rating, err := parseNumeric(ratingStr)
	if err != nil {
		return RawReview{}, fmt.Errorf("line %d: invalid rating value %q: %w", lineNum, ratingStr, err)
	}
	if rating.Valid {
		review.Rating = &rating.Num
	}

	return review, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
