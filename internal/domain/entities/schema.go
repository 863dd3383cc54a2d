package entities

import (
	"errors"
	"fmt"
	"strings"
)

// AttributeKind describes how an attribute takes part in similarity.
type AttributeKind string

// Attribute kinds. Only numeric and categorical attributes are features;
// the rest are carried through but never compared.
const (
	KindIdentity     AttributeKind = "identity"
	KindFamily       AttributeKind = "family"
	KindNumeric      AttributeKind = "numeric"
	KindCategorical  AttributeKind = "categorical"
	KindPresentation AttributeKind = "presentation"
)

// IsValid reports whether k is a known attribute kind.
func (k AttributeKind) IsValid() bool {
	switch k {
	case KindIdentity, KindFamily, KindNumeric, KindCategorical, KindPresentation:
		return true
	}
	return false
}

// IsFeature reports whether attributes of this kind are compared by the distance engine.
func (k AttributeKind) IsFeature() bool {
	return k == KindNumeric || k == KindCategorical
}

// Catalog column names.
const (
	ColID        = "bgg_id"
	ColName      = "name"
	ColYear      = "year"
	ColRank      = "rank"
	ColFamily    = "family"
	ColThumbnail = "thumbnail"
	ColImage     = "image"

	AttrComplexity  = "avg_weights"
	AttrMinPlayers  = "min_players"
	AttrMaxPlayers  = "max_players"
	AttrMinPlaytime = "min_playtime"
	AttrMaxPlaytime = "max_playtime"
	AttrMinAge      = "min_age"
	AttrRating      = "avg_rating"
	AttrVotes       = "user_rating"
)

// DefaultCategoryPrefix marks the BoardGameGeek category flag columns.
const DefaultCategoryPrefix = "cat_"

// GenreFlags are the BoardGameGeek genre membership columns.
var GenreFlags = []string{
	"abstracts",
	"cgs",
	"childrensgames",
	"familygames",
	"partygames",
	"strategygames",
	"thematic",
	"wargames",
}

// Attribute declares one catalog column.
type Attribute struct {
	Name   string        `yaml:"name" json:"name"`
	Kind   AttributeKind `yaml:"kind" json:"kind"`
	Weight float64       `yaml:"weight,omitempty" json:"weight,omitempty"` // 0 means 1 when declared
}

// Schema is the declared, ordered attribute list of a catalog.
// Features (numeric and categorical attributes) are indexed in declaration order
// and Game.Attrs is aligned with them.
type Schema struct {
	attrs    []Attribute
	features []Attribute
	index    map[string]int
	kinds    map[string]AttributeKind
	prefixes []string
}

// NewSchema builds a schema from declared attributes. A declared weight of 0 is
// read as 1. Columns whose name starts with one of categoricalPrefixes are
// adopted as categorical features by Resolve.
func NewSchema(attrs []Attribute, categoricalPrefixes ...string) (*Schema, error) {
	declared := make([]Attribute, len(attrs))
	for i, a := range attrs {
		if a.Weight == 0 {
			a.Weight = 1
		}
		declared[i] = a
	}
	return buildSchema(declared, categoricalPrefixes)
}

// buildSchema keeps weights as given, so a 0 weight switches a feature off.
func buildSchema(attrs []Attribute, categoricalPrefixes []string) (*Schema, error) {
	s := &Schema{
		index: make(map[string]int),
		kinds: make(map[string]AttributeKind, len(attrs)),
	}

	for _, a := range attrs {
		if err := s.add(a); err != nil {
			return nil, err
		}
	}

	for _, p := range categoricalPrefixes {
		if p = strings.TrimSpace(p); p != "" {
			s.prefixes = append(s.prefixes, p)
		}
	}

	return s, nil
}

func (s *Schema) add(a Attribute) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return errors.New("attribute name is required")
	}
	if !a.Kind.IsValid() {
		return fmt.Errorf("attribute %q: unknown kind %q", a.Name, a.Kind)
	}
	if a.Weight < 0 {
		return fmt.Errorf("attribute %q: negative weight %v", a.Name, a.Weight)
	}
	if _, dup := s.kinds[a.Name]; dup {
		return fmt.Errorf("attribute %q declared twice", a.Name)
	}

	s.attrs = append(s.attrs, a)
	s.kinds[a.Name] = a.Kind
	if a.Kind.IsFeature() {
		s.index[a.Name] = len(s.features)
		s.features = append(s.features, a)
	}
	return nil
}

// DefaultSchema returns the BoardGameGeek catalog schema.
func DefaultSchema() *Schema {
	attrs := []Attribute{
		{Name: ColID, Kind: KindIdentity},
		{Name: ColName, Kind: KindIdentity},
		{Name: ColYear, Kind: KindIdentity},
		{Name: ColRank, Kind: KindIdentity},
		{Name: ColFamily, Kind: KindFamily},
		{Name: ColThumbnail, Kind: KindPresentation},
		{Name: ColImage, Kind: KindPresentation},
		{Name: AttrComplexity, Kind: KindNumeric},
		{Name: AttrMinPlayers, Kind: KindNumeric},
		{Name: AttrMaxPlayers, Kind: KindNumeric},
		{Name: AttrMinPlaytime, Kind: KindNumeric},
		{Name: AttrMaxPlaytime, Kind: KindNumeric},
		{Name: AttrMinAge, Kind: KindNumeric},
		{Name: AttrRating, Kind: KindNumeric},
		{Name: AttrVotes, Kind: KindNumeric},
	}
	for _, g := range GenreFlags {
		attrs = append(attrs, Attribute{Name: g, Kind: KindCategorical})
	}

	s, err := NewSchema(attrs, DefaultCategoryPrefix)
	if err != nil {
		panic(err) // static declaration
	}
	return s
}

// Attributes returns all declared attributes in order.
func (s *Schema) Attributes() []Attribute {
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Features returns the numeric and categorical attributes in order.
func (s *Schema) Features() []Attribute {
	out := make([]Attribute, len(s.features))
	copy(out, s.features)
	return out
}

// NumFeatures returns the number of compared attributes.
func (s *Schema) NumFeatures() int {
	return len(s.features)
}

// Feature returns the i-th feature.
func (s *Schema) Feature(i int) Attribute {
	return s.features[i]
}

// FeatureIndex returns the position of a feature in Game.Attrs.
func (s *Schema) FeatureIndex(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Kind returns the declared kind of a column.
func (s *Schema) Kind(name string) (AttributeKind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// CategoricalPrefixes returns the prefixes adopted as categorical by Resolve.
func (s *Schema) CategoricalPrefixes() []string {
	return append([]string(nil), s.prefixes...)
}

// Resolve returns a copy of the schema extended with every column that matches a
// categorical prefix and is not declared yet. It runs once per catalog load.
func (s *Schema) Resolve(columns []string) *Schema {
	out, _ := buildSchema(s.attrs, s.prefixes)
	for _, col := range columns {
		col = strings.TrimSpace(col)
		if _, ok := out.kinds[col]; ok {
			continue
		}
		if hasAnyPrefix(col, s.prefixes) {
			_ = out.add(Attribute{Name: col, Kind: KindCategorical, Weight: 1})
		}
	}
	return out
}

// WithWeights returns a copy of the schema with feature weights overridden.
// A weight of 0 keeps the feature out of every distance.
func (s *Schema) WithWeights(weights map[string]float64) (*Schema, error) {
	attrs := s.Attributes()
	for name, w := range weights {
		kind, ok := s.kinds[name]
		if !ok {
			return nil, fmt.Errorf("weight for unknown attribute %q", name)
		}
		if !kind.IsFeature() {
			return nil, fmt.Errorf("weight for %s attribute %q", kind, name)
		}
		if w < 0 {
			return nil, fmt.Errorf("weight for %q: negative weight %v", name, w)
		}
		for i := range attrs {
			if attrs[i].Name == name {
				attrs[i].Weight = w
			}
		}
	}
	return buildSchema(attrs, s.prefixes)
}

// CategoryColumns returns the prefixed categorical features, e.g. the cat_* flags.
func (s *Schema) CategoryColumns(prefix string) []string {
	var cols []string
	for _, f := range s.features {
		if f.Kind == KindCategorical && strings.HasPrefix(f.Name, prefix) {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
