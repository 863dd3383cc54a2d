package ports

import (
	"context"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// CatalogSource loads a catalog snapshot from storage.
type CatalogSource interface {
	// Load reads and parses the whole catalog.
	Load(ctx context.Context) (*entities.Catalog, error)

	// Describe returns a human-readable location of the catalog, e.g. a bucket URL.
	Describe() string
}
