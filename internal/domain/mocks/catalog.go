package mocks

import (
	"context"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// CatalogSource is a mock implementation of ports.CatalogSource.
type CatalogSource struct {
	Catalog *entities.Catalog
	Err     error

	// Call tracking
	LoadCallCount int
}

// Load returns the configured catalog or error.
func (m *CatalogSource) Load(ctx context.Context) (*entities.Catalog, error) {
	m.LoadCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Catalog, nil
}

// Describe returns a fixed location.
func (m *CatalogSource) Describe() string {
	return "mock://catalog"
}
