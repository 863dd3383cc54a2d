package entities

import "math"

// MaxRatingTier is the highest rating tier.
const MaxRatingTier = 10

// Constraints narrow the candidate pool of a recommendation. A nil field means
// the constraint is not applied. Values are validated at the boundary.
type Constraints struct {
	MinYear       *int `json:"min_year,omitempty" validate:"omitempty,gte=1,lte=2100"`
	PlayerCount   *int `json:"player_count,omitempty" validate:"omitempty,gte=1,lte=100"`
	MinRatingTier *int `json:"min_rating_tier,omitempty" validate:"omitempty,gte=0,lte=10"`
	MinVotes      *int `json:"min_votes,omitempty" validate:"omitempty,gte=0"`
}

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool {
	return c.MinYear == nil && c.PlayerCount == nil && c.MinRatingTier == nil && c.MinVotes == nil
}

// RatingTier buckets an average rating into a whole-number tier in [0, MaxRatingTier].
// A missing rating is tier 0.
func RatingTier(rating Value) int {
	if !rating.Valid || math.IsNaN(rating.Num) {
		return 0
	}
	tier := int(math.Floor(rating.Num))
	switch {
	case tier < 0:
		return 0
	case tier > MaxRatingTier:
		return MaxRatingTier
	}
	return tier
}

// IntPtr returns a pointer to v, for building constraints.
func IntPtr(v int) *int {
	return &v
}
