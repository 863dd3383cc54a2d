package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/mocks"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/parsers"
)

const catalogCSV = `bgg_id,name,year,rank,family,avg_weights,min_players,max_players,avg_rating,user_rating,strategygames,thematic,cat_Economic
1,Brass,2018,1,Brass,3.87,2,4,8.6,40000,1,0,1
2,Pandemic,2015,2,,2.83,2,4,8.5,50000,1,1,0
3,Gloomhaven,2017,3,,3.9,1,4,8.7,500,0,1,0
4,Brass: Lancashire,2007,4,brass,3.2,2,4,7.9,20000,1,0,1
`

// newStore serves catalogCSV through a mock source that loads once.
func newStore(t *testing.T) (*services.CatalogStore, *mocks.CatalogSource) {
	t.Helper()

	p := &parsers.CSVParser{}
	c, err := p.ParseCatalog(strings.NewReader(catalogCSV), entities.DefaultSchema(), "test.csv")
	require.NoError(t, err)

	source := &mocks.CatalogSource{Catalog: c}
	return services.NewCatalogStore(source, 0), source
}
