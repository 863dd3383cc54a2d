package services

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// Trend defaults.
const (
	DefaultMinVotes        = 1000
	DefaultHeatmapTopN     = 1000
	DefaultHeatmapMinTotal = 50
)

// YearRange is an inclusive range of publication years.
type YearRange struct {
	From int `json:"from" validate:"gte=0,lte=2100"`
	To   int `json:"to" validate:"gte=0,lte=2100"`
}

// DefaultYearRange is the range charted by the trend views.
var DefaultYearRange = YearRange{From: 2000, To: 2023}

func (r YearRange) orDefault() YearRange {
	if r.From == 0 && r.To == 0 {
		return DefaultYearRange
	}
	if r.To == 0 {
		r.To = math.MaxInt
	}
	return r
}

func (r YearRange) contains(year int) bool {
	return year != 0 && year >= r.From && year <= r.To
}

// categoryRenames shortens category names for display.
var categoryRenames = map[string]string{
	"Industry / Manufacturing": "Industry",
}

// TrendService computes the chart data of the trend views from the current catalog.
type TrendService struct {
	store *CatalogStore
}

// NewTrendService creates a new trend service.
func NewTrendService(store *CatalogStore) *TrendService {
	return &TrendService{store: store}
}

// AverageRatingByYear returns the mean average rating of the games of each year.
// Years without any rated game are left out.
func (s *TrendService) AverageRatingByYear(ctx context.Context, years YearRange) ([]entities.YearRating, error) {
	c, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	years = years.orDefault()

	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for i := 0; i < c.Len(); i++ {
		g := c.At(i)
		rating := c.Value(i, entities.AttrRating)
		if !years.contains(g.Year) || !rating.Valid {
			continue
		}
		a := byYear[g.Year]
		if a == nil {
			a = &acc{}
			byYear[g.Year] = a
		}
		a.sum += rating.Num
		a.n++
	}

	out := make([]entities.YearRating, 0, len(byYear))
	for _, year := range sortedKeys(byYear) {
		a := byYear[year]
		out = append(out, entities.YearRating{Year: year, AvgRating: a.sum / float64(a.n), Games: a.n})
	}
	return out, nil
}

// GenreCountsByRatingTier counts the games of each genre per rating tier.
// Unrated games are left out; every genre appears for every tier present.
func (s *TrendService) GenreCountsByRatingTier(ctx context.Context) ([]entities.GenreTierCount, error) {
	c, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]map[string]int)
	for i := 0; i < c.Len(); i++ {
		rating := c.Value(i, entities.AttrRating)
		if !rating.Valid || rating.Num <= 0 {
			continue
		}
		tier := entities.RatingTier(rating)
		if counts[tier] == nil {
			counts[tier] = make(map[string]int)
		}
		for _, genre := range entities.GenreFlags {
			counts[tier][genre] += flagCount(c.Value(i, genre))
		}
	}

	out := make([]entities.GenreTierCount, 0, len(counts)*len(entities.GenreFlags))
	for _, tier := range sortedKeys(counts) {
		for _, genre := range entities.GenreFlags {
			out = append(out, entities.GenreTierCount{
				Tier:  tier,
				Genre: genreLabel(genre),
				Count: counts[tier][genre],
			})
		}
	}
	return out, nil
}

// ComplexityVsRating places the games of the year range with at least minVotes
// votes on the complexity/rating plane, both rounded to two decimals.
func (s *TrendService) ComplexityVsRating(ctx context.Context, years YearRange, minVotes int) ([]entities.ComplexityPoint, error) {
	c, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	years = years.orDefault()

	out := []entities.ComplexityPoint{}
	for i := 0; i < c.Len(); i++ {
		g := c.At(i)
		weight := c.Value(i, entities.AttrComplexity)
		rating := c.Value(i, entities.AttrRating)
		votes := c.Value(i, entities.AttrVotes)
		if !years.contains(g.Year) || !weight.Valid || !rating.Valid || !votes.Valid {
			continue
		}
		if votes.Num < float64(minVotes) {
			continue
		}
		out = append(out, entities.ComplexityPoint{
			GameID:     g.ID,
			Name:       g.Name,
			Year:       g.Year,
			Complexity: round2(weight.Num),
			Rating:     round2(rating.Num),
			Votes:      int(votes.Num),
		})
	}
	return out, nil
}

// CategoryHeatmap counts the games per category and year among the first topN
// games of the year range. Categories nobody uses are dropped, and only the
// categories with more than minTotal games overall are kept.
func (s *TrendService) CategoryHeatmap(ctx context.Context, years YearRange, topN, minTotal int) (*entities.CategoryHeatmap, error) {
	c, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	years = years.orDefault()
	if topN <= 0 {
		topN = DefaultHeatmapTopN
	}
	if minTotal < 0 {
		minTotal = DefaultHeatmapMinTotal
	}

	columns := c.Schema().CategoryColumns(entities.DefaultCategoryPrefix)

	var rows []int
	for i := 0; i < c.Len() && len(rows) < topN; i++ {
		if years.contains(c.At(i).Year) {
			rows = append(rows, i)
		}
	}

	yearSet := make(map[int]struct{})
	for _, i := range rows {
		yearSet[c.At(i).Year] = struct{}{}
	}
	yearList := sortedKeys(yearSet)
	yearPos := make(map[int]int, len(yearList))
	for j, y := range yearList {
		yearPos[y] = j
	}

	heatmap := &entities.CategoryHeatmap{
		Years:      yearList,
		Categories: []string{},
		Counts:     [][]int{},
	}

	// Renamed columns may collide, so counts are merged by display name.
	merged := make(map[string][]int)
	var order []string
	for _, col := range columns {
		perYear := make([]int, len(yearList))
		total := 0
		for _, i := range rows {
			n := flagCount(c.Value(i, col))
			perYear[yearPos[c.At(i).Year]] += n
			total += n
		}
		if total == 0 {
			continue
		}

		name := categoryLabel(col)
		if existing, ok := merged[name]; ok {
			for j := range existing {
				existing[j] += perYear[j]
			}
			continue
		}
		merged[name] = perYear
		order = append(order, name)
	}

	for _, name := range order {
		perYear := merged[name]
		total := 0
		for _, n := range perYear {
			total += n
		}
		if total <= minTotal {
			continue
		}
		heatmap.Categories = append(heatmap.Categories, name)
		heatmap.Counts = append(heatmap.Counts, perYear)
	}

	return heatmap, nil
}

// flagCount reads a 0/1 flag; anything non-numeric or missing counts as 0.
func flagCount(v entities.Value) int {
	if !v.Valid {
		return 0
	}
	if v.Cat == "" {
		return int(v.Num)
	}
	f, err := strconv.ParseFloat(v.Cat, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return int(f)
}

func genreLabel(col string) string {
	if label, ok := entities.GenreLabels[col]; ok {
		return label
	}
	return col
}

func categoryLabel(col string) string {
	name := strings.TrimPrefix(col, entities.DefaultCategoryPrefix)
	if renamed, ok := categoryRenames[name]; ok {
		return renamed
	}
	return name
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
