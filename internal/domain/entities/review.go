package entities

import (
	"fmt"
	"strings"
	"time"
)

// Sentiment is the final sentiment label of a review.
type Sentiment string

// Review sentiment labels.
const (
	SentimentPositive        Sentiment = "Positive"
	SentimentNegative        Sentiment = "Negative"
	SentimentNeutralPositive Sentiment = "Neutral-Positive"
	SentimentNeutralNegative Sentiment = "Neutral-Negative"
)

// Sentiments lists the labels in display order.
var Sentiments = []Sentiment{
	SentimentPositive,
	SentimentNegative,
	SentimentNeutralPositive,
	SentimentNeutralNegative,
}

// ParseSentiment matches a label case-insensitively.
func ParseSentiment(s string) (Sentiment, error) {
	for _, v := range Sentiments {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown sentiment %q (valid: %v)", s, Sentiments)
}

// Review is a user review of a game with its classified sentiment.
type Review struct {
	ID           string    `json:"id"`
	GameID       int64     `json:"bgg_id"`
	GameName     string    `json:"name"`
	User         string    `json:"user,omitempty"`
	Rating       float64   `json:"rating"`
	Comment      string    `json:"comment"`
	Sentiment    Sentiment `json:"sentiment"`
	Subjectivity float64   `json:"subjectivity"`
	LabelProba   float64   `json:"label_proba"`
	CreatedAt    time.Time `json:"created_at"`

	// Score is set by semantic search.
	Score float32 `json:"score,omitempty"`

	Embedding []float32 `json:"-"`
}

// Key returns a stable identity for the review.
func (r *Review) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("%d/%s", r.GameID, r.User)
}

// ReviewQuery selects reviews of one game.
type ReviewQuery struct {
	GameID    int64     `json:"bgg_id" validate:"required,gt=0"`
	Sentiment Sentiment `json:"sentiment,omitempty" validate:"omitempty,oneof=Positive Negative Neutral-Positive Neutral-Negative"`
	Rating    *int      `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Limit     int       `json:"limit,omitempty" validate:"gte=0,lte=100"`
}
