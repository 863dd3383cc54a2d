package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

const catalogCSV = `rank,bgg_id,name,year,family,avg_weights,min_players,max_players,avg_rating,user_rating,strategygames,cat_Economic,thumbnail
1,224517,Brass: Birmingham,2018,Brass,3.87,2,4,8.6,40000,1,1.0,https://img/brass.jpg
2,161936,Pandemic Legacy: Season 1,2015.0,Pandemic,2.83,2,4,8.5,50000,1,0,
3,174430,Gloomhaven,2017,,nan,1,4,,60000,,,
`

func TestCSVParser_ParseCatalog(t *testing.T) {
	p := &CSVParser{}
	c, err := p.ParseCatalog(strings.NewReader(catalogCSV), nil, "test.csv")
	require.NoError(t, err)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, "test.csv", c.Source())

	brass := c.At(0)
	assert.Equal(t, int64(224517), brass.ID)
	assert.Equal(t, "Brass: Birmingham", brass.Name)
	assert.Equal(t, 2018, brass.Year)
	assert.Equal(t, 1, brass.Rank)
	assert.Equal(t, "Brass", brass.FamilyKey)
	assert.Equal(t, "https://img/brass.jpg", brass.Thumbnail)

	assert.Equal(t, entities.Number(3.87), c.Value(0, entities.AttrComplexity))
	assert.Equal(t, entities.Category("1"), c.Value(0, "strategygames"))
	assert.Equal(t, entities.Category("1"), c.Value(0, "cat_Economic"), "1.0 canonicalized")
	assert.False(t, c.Value(0, entities.AttrMinPlaytime).Valid, "absent column is missing")

	assert.Equal(t, 2015, c.At(1).Year, "float year accepted")

	gloom := 2
	assert.False(t, c.Value(gloom, entities.AttrComplexity).Valid, "nan is missing")
	assert.False(t, c.Value(gloom, entities.AttrRating).Valid)
	assert.False(t, c.Value(gloom, "strategygames").Valid)
	assert.False(t, c.At(gloom).HasFamily())

	kind, ok := c.Schema().Kind("cat_Economic")
	require.True(t, ok)
	assert.Equal(t, entities.KindCategorical, kind)
}

func TestCSVParser_ParseCatalog_DuplicateColumns(t *testing.T) {
	input := ",,bgg_id,name,cat_Dice,cat_Dice,avg_rating\n" +
		"0,0,1,A,1,0,7.5\n" +
		"1,1,2,B,0,1,6.2\n"

	c, err := (&CSVParser{}).ParseCatalog(strings.NewReader(input), nil, "dup.csv")
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, entities.Number(7.5), c.Value(0, entities.AttrRating))
	assert.Equal(t, entities.Category("1"), c.Value(0, "cat_Dice"), "first of the repeated columns wins")
	assert.Equal(t, entities.Category("0"), c.Value(1, "cat_Dice"))
	assert.Equal(t, []string{"cat_Dice"}, c.Schema().CategoryColumns(entities.DefaultCategoryPrefix))
}

func TestCSVParser_ParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "", wantErr: "reading CSV header"},
		{name: "no id column", input: "name,year\nCatan,1995\n", wantErr: "missing required column: bgg_id"},
		{name: "bad id", input: "bgg_id,name\nabc,Catan\n", wantErr: "line 2: invalid bgg_id"},
		{name: "bad number", input: "bgg_id,avg_rating\n1,great\n", wantErr: "line 2: invalid avg_rating"},
		{name: "duplicate id", input: "bgg_id,name\n1,A\n1,B\n", wantErr: "duplicate game id 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&CSVParser{}).ParseCatalog(strings.NewReader(tt.input), nil, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJSONParser_ParseCatalog(t *testing.T) {
	input := `[
		{"bgg_id": 13, "name": "CATAN", "year": 1995, "avg_rating": 7.1, "thematic": false, "cat_Negotiation": 1},
		{"bgg_id": 822, "name": "Carcassonne", "year": null, "avg_rating": "7.4", "thematic": true}
	]`

	c, err := (&JSONParser{}).ParseCatalog(strings.NewReader(input), nil, "games.json")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	assert.Equal(t, entities.Number(7.1), c.Value(0, entities.AttrRating))
	assert.Equal(t, entities.Number(7.4), c.Value(1, entities.AttrRating))
	assert.Equal(t, entities.Category("0"), c.Value(0, "thematic"))
	assert.Equal(t, entities.Category("1"), c.Value(1, "thematic"))
	assert.Equal(t, entities.Category("1"), c.Value(0, "cat_Negotiation"))
	assert.False(t, c.Value(1, "cat_Negotiation").Valid)
	assert.Zero(t, c.At(1).Year)
}

func TestCSVParser_Parse_Reviews(t *testing.T) {
	input := `id,bgg_id,name,user,rating,comment,final_sentiment,subjectivity,label_proba
r1,13,CATAN,alice,8,Great trading game,Positive,0.6,0.98
,13,CATAN,bob,,Too much luck,Negative,0.4,0.7
`

	result, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 2)

	first := result[0]
	assert.Equal(t, "r1", first.ID)
	assert.Equal(t, int64(13), first.GameID)
	assert.Equal(t, "alice", first.User)
	require.NotNil(t, first.Rating)
	assert.Equal(t, 8.0, *first.Rating)
	assert.Equal(t, "Positive", first.Sentiment)
	assert.Equal(t, 0.98, first.LabelProba)
	assert.Equal(t, 2, first.LineNum)

	assert.Nil(t, result[1].Rating)
	assert.Equal(t, 3, result[1].LineNum)
}

func TestCSVParser_Parse_SentimentAlias(t *testing.T) {
	input := "bgg_id,comment,sentiment\n13,Fine,Neutral-Positive\n"

	result, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Neutral-Positive", result[0].Sentiment)
}

func TestCSVParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "missing comment", input: "bgg_id,final_sentiment\n", wantErr: "missing required column: comment"},
		{name: "missing sentiment", input: "bgg_id,comment\n", wantErr: "missing required column: final_sentiment"},
		{name: "bad rating", input: "bgg_id,comment,final_sentiment,rating\n1,x,Positive,ten\n", wantErr: "line 2: invalid rating"},
		{name: "bad id", input: "bgg_id,comment,final_sentiment\none,x,Positive\n", wantErr: "line 2: invalid bgg_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&CSVParser{}).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJSONParser_Parse_Reviews(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{name: "single review", input: `[{"bgg_id": 13, "comment": "Classic", "final_sentiment": "Positive", "rating": 7}]`, expected: 1},
		{name: "empty array", input: "[]", expected: 0},
		{name: "invalid json", input: `[{"bgg_id": }]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := (&JSONParser{}).Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, result, tt.expected)
			for i, r := range result {
				assert.Equal(t, i+1, r.LineNum)
			}
		})
	}
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("JSON"))
	assert.IsType(t, &CSVParser{}, ForFormat("csv"))
	assert.Nil(t, ForFormat("xml"))

	assert.IsType(t, &CSVParser{}, ForFile("reviews.CSV"))
	assert.IsType(t, &JSONParser{}, ForFile("/tmp/reviews.json"))
	assert.Nil(t, ForFile("reviews.txt"))
}

func TestCatalogForFormat(t *testing.T) {
	assert.IsType(t, &CSVParser{}, CatalogForFormat(""))
	assert.IsType(t, &JSONParser{}, CatalogForFormat("json"))
	assert.Nil(t, CatalogForFormat("parquet"))

	assert.IsType(t, &CSVParser{}, CatalogForFile("boardgames_cleaned.csv"))
	assert.Nil(t, CatalogForFile("boardgames"))
}

func TestParseCategorical(t *testing.T) {
	tests := []struct {
		input    string
		expected entities.Value
	}{
		{"1", entities.Category("1")},
		{"1.00", entities.Category("1")},
		{" Yes ", entities.Category("Yes")},
		{"NaN", entities.Missing()},
		{"", entities.Missing()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCategorical(tt.input))
		})
	}
}
