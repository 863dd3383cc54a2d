package entities

// Recommendation is one ranked similar game.
type Recommendation struct {
	GameID     int64   `json:"bgg_id"`
	Name       string  `json:"name"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"` // 1 - Distance
}

// RecommendedGame is a recommendation joined with the presentation fields of its game.
type RecommendedGame struct {
	Recommendation
	Year      int    `json:"year,omitempty"`
	Rank      int    `json:"rank,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Image     string `json:"image,omitempty"`
	Link      string `json:"link"`
}

// Enrich joins a recommendation with the presentation fields of g.
func Enrich(rec Recommendation, g *Game) RecommendedGame {
	return RecommendedGame{
		Recommendation: rec,
		Year:           g.Year,
		Rank:           g.Rank,
		Thumbnail:      g.Thumbnail,
		Image:          g.Image,
		Link:           g.Link(),
	}
}

// RecommendationSet is the answer to one recommendation request.
type RecommendationSet struct {
	Query    Game              `json:"query"`
	Metric   string            `json:"metric"`
	PoolSize int               `json:"pool_size"`
	Games    []RecommendedGame `json:"games"`
}
