package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		attrs   []Attribute
		wantErr string
	}{
		{
			name:  "valid",
			attrs: []Attribute{{Name: "a", Kind: KindNumeric}, {Name: "b", Kind: KindCategorical, Weight: 2}},
		},
		{
			name:    "blank name",
			attrs:   []Attribute{{Name: "  ", Kind: KindNumeric}},
			wantErr: "name is required",
		},
		{
			name:    "unknown kind",
			attrs:   []Attribute{{Name: "a", Kind: "ordinal"}},
			wantErr: "unknown kind",
		},
		{
			name:    "negative weight",
			attrs:   []Attribute{{Name: "a", Kind: KindNumeric, Weight: -1}},
			wantErr: "negative weight",
		},
		{
			name:    "duplicate",
			attrs:   []Attribute{{Name: "a", Kind: KindNumeric}, {Name: "a", Kind: KindCategorical}},
			wantErr: "declared twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema(tt.attrs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.attrs), s.NumFeatures())
		})
	}
}

func TestNewSchema_DefaultWeight(t *testing.T) {
	s, err := NewSchema([]Attribute{
		{Name: "a", Kind: KindNumeric},
		{Name: "b", Kind: KindNumeric, Weight: 2.5},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, s.Feature(0).Weight)
	assert.Equal(t, 2.5, s.Feature(1).Weight)
}

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	assert.Equal(t, 8+len(GenreFlags), s.NumFeatures())

	kind, ok := s.Kind(ColFamily)
	require.True(t, ok)
	assert.Equal(t, KindFamily, kind)

	_, ok = s.FeatureIndex(ColName)
	assert.False(t, ok, "identity columns are not features")

	idx, ok := s.FeatureIndex(AttrComplexity)
	require.True(t, ok)
	assert.Equal(t, AttrComplexity, s.Feature(idx).Name)

	assert.Equal(t, []string{DefaultCategoryPrefix}, s.CategoricalPrefixes())
}

func TestSchema_Resolve(t *testing.T) {
	s := DefaultSchema()
	before := s.NumFeatures()

	resolved := s.Resolve([]string{ColID, ColName, "cat_Economic", " cat_Fantasy ", "designer", AttrRating})

	assert.Equal(t, before, s.NumFeatures(), "original schema unchanged")
	assert.Equal(t, before+2, resolved.NumFeatures())
	assert.Equal(t, []string{"cat_Economic", "cat_Fantasy"}, resolved.CategoryColumns(DefaultCategoryPrefix))

	kind, ok := resolved.Kind("cat_Economic")
	require.True(t, ok)
	assert.Equal(t, KindCategorical, kind)

	_, ok = resolved.Kind("designer")
	assert.False(t, ok)
}

func TestSchema_WithWeights(t *testing.T) {
	s := DefaultSchema()

	weighted, err := s.WithWeights(map[string]float64{AttrComplexity: 3})
	require.NoError(t, err)

	idx, _ := weighted.FeatureIndex(AttrComplexity)
	assert.Equal(t, 3.0, weighted.Feature(idx).Weight)

	idx, _ = s.FeatureIndex(AttrComplexity)
	assert.Equal(t, 1.0, s.Feature(idx).Weight, "original schema unchanged")

	_, err = s.WithWeights(map[string]float64{"bogus": 1})
	assert.ErrorContains(t, err, "unknown attribute")

	_, err = s.WithWeights(map[string]float64{ColName: 1})
	assert.ErrorContains(t, err, "identity attribute")

	_, err = s.WithWeights(map[string]float64{AttrRating: -2})
	assert.ErrorContains(t, err, "negative weight")
}

func TestSchema_WithWeights_ZeroDisablesFeature(t *testing.T) {
	weighted, err := DefaultSchema().WithWeights(map[string]float64{AttrComplexity: 0})
	require.NoError(t, err)

	idx, ok := weighted.FeatureIndex(AttrComplexity)
	require.True(t, ok)
	assert.Zero(t, weighted.Feature(idx).Weight)

	resolved := weighted.Resolve([]string{ColID, AttrComplexity, "cat_Economic"})
	idx, _ = resolved.FeatureIndex(AttrComplexity)
	assert.Zero(t, resolved.Feature(idx).Weight, "zero weight survives header resolution")

	idx, ok = resolved.FeatureIndex("cat_Economic")
	require.True(t, ok)
	assert.Equal(t, 1.0, resolved.Feature(idx).Weight)
}
