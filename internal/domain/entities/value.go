// Package entities contains core domain data structures.
package entities

import "strconv"

// Value is a single optional attribute value of a game.
// Numeric attributes use Num, categorical attributes use Cat.
// Valid is false when the catalog has no value for the attribute.
type Value struct {
	Num   float64
	Cat   string
	Valid bool
}

// Number returns a present numeric value.
func Number(v float64) Value {
	return Value{Num: v, Valid: true}
}

// Category returns a present categorical value.
func Category(s string) Value {
	return Value{Cat: s, Valid: true}
}

// Missing returns an absent value.
func Missing() Value {
	return Value{}
}

// String formats the value for display.
func (v Value) String() string {
	switch {
	case !v.Valid:
		return "-"
	case v.Cat != "":
		return v.Cat
	default:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
}
