package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

func TestValidateStruct_Constraints(t *testing.T) {
	tests := []struct {
		name    string
		cons    entities.Constraints
		field   string
		wantErr bool
	}{
		{name: "empty", cons: entities.Constraints{}},
		{
			name: "all valid",
			cons: entities.Constraints{
				MinYear:       entities.IntPtr(2010),
				PlayerCount:   entities.IntPtr(4),
				MinRatingTier: entities.IntPtr(7),
				MinVotes:      entities.IntPtr(1000),
			},
		},
		{name: "tier zero allowed", cons: entities.Constraints{MinRatingTier: entities.IntPtr(0)}},
		{name: "year too small", cons: entities.Constraints{MinYear: entities.IntPtr(0)}, field: "min_year", wantErr: true},
		{name: "no players", cons: entities.Constraints{PlayerCount: entities.IntPtr(0)}, field: "player_count", wantErr: true},
		{name: "tier above 10", cons: entities.Constraints{MinRatingTier: entities.IntPtr(11)}, field: "min_rating_tier", wantErr: true},
		{name: "negative votes", cons: entities.Constraints{MinVotes: entities.IntPtr(-1)}, field: "min_votes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.cons)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var ve *Error
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
		})
	}
}

func TestValidateStruct_ReviewQuery(t *testing.T) {
	err := ValidateStruct(entities.ReviewQuery{GameID: 13, Sentiment: entities.SentimentPositive, Limit: 10})
	assert.NoError(t, err)

	err = ValidateStruct(entities.ReviewQuery{Sentiment: "Angry"})
	require.Error(t, err)

	var ve *Error
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, "bgg_id is required", ve.Fields[0].Message)
	assert.Contains(t, ve.Fields[1].Message, "sentiment must be one of")
}

func TestIsValidationError(t *testing.T) {
	err := ValidateStruct(entities.Constraints{PlayerCount: entities.IntPtr(-3)})

	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(fmt.Errorf("recommend: %w", err)))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
	assert.Equal(t, "player_count must be greater than or equal to 1", err.Error())
}
