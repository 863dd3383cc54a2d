package entities

// YearRating is the mean rating of the games published in a year.
type YearRating struct {
	Year      int     `json:"year"`
	AvgRating float64 `json:"avg_rating"`
	Games     int     `json:"games"`
}

// GenreTierCount is the number of games of a genre within a rating tier.
type GenreTierCount struct {
	Tier  int    `json:"rating_tier"`
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// ComplexityPoint places one game on the complexity/rating plane.
type ComplexityPoint struct {
	GameID     int64   `json:"bgg_id"`
	Name       string  `json:"name"`
	Year       int     `json:"year"`
	Complexity float64 `json:"complexity"`
	Rating     float64 `json:"rating"`
	Votes      int     `json:"votes"`
}

// CategoryHeatmap holds per-year counts for each category flag.
// Counts[i][j] is the number of games of Years[j] in Categories[i].
type CategoryHeatmap struct {
	Years      []int    `json:"years"`
	Categories []string `json:"categories"`
	Counts     [][]int  `json:"counts"`
}

// GenreLabels maps genre flag columns to display names.
var GenreLabels = map[string]string{
	"abstracts":      "Abstract",
	"cgs":            "Customizable",
	"childrensgames": "Children",
	"familygames":    "Family",
	"partygames":     "Party",
	"strategygames":  "Strategy",
	"thematic":       "Thematic",
	"wargames":       "War",
}
