package entities

import "errors"

var (
	// ErrGameNotFound is returned when a selection matches no catalog row.
	ErrGameNotFound = errors.New("game not found")

	// ErrEmptyCatalog is returned when a catalog has no rows.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrInvalidSelection is returned for a blank game selection.
	ErrInvalidSelection = errors.New("invalid game selection")
)
