package parsers

import (
	"fmt"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// cellFunc returns the raw text of a column in the current row.
type cellFunc func(col string) string

// buildGame converts one row into a game aligned with the resolved schema.
func buildGame(schema *entities.Schema, cell cellFunc, lineNum int) (entities.Game, error) {
	idText := cell(entities.ColID)
	id, err := parseWhole(idText)
	if err != nil || id == 0 {
		return entities.Game{}, fmt.Errorf("line %d: invalid %s %q", lineNum, entities.ColID, idText)
	}

	year, err := parseWhole(cell(entities.ColYear))
	if err != nil {
		return entities.Game{}, fmt.Errorf("line %d: invalid %s %q", lineNum, entities.ColYear, cell(entities.ColYear))
	}
	rank, err := parseWhole(cell(entities.ColRank))
	if err != nil {
		return entities.Game{}, fmt.Errorf("line %d: invalid %s %q", lineNum, entities.ColRank, cell(entities.ColRank))
	}

	g := entities.Game{
		ID:        id,
		Name:      cell(entities.ColName),
		Year:      int(year),
		Rank:      int(rank),
		FamilyKey: cell(entities.ColFamily),
		Thumbnail: cell(entities.ColThumbnail),
		Image:     cell(entities.ColImage),
		Attrs:     make([]entities.Value, schema.NumFeatures()),
	}

	for i := 0; i < schema.NumFeatures(); i++ {
		f := schema.Feature(i)
		text := cell(f.Name)
		if f.Kind == entities.KindCategorical {
			g.Attrs[i] = parseCategorical(text)
			continue
		}
		v, err := parseNumeric(text)
		if err != nil {
			return entities.Game{}, fmt.Errorf("line %d: invalid %s value %q: %w", lineNum, f.Name, text, err)
		}
		g.Attrs[i] = v
	}

	return g, nil
}
