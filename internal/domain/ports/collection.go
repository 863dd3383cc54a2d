// Package ports defines interfaces for external service communication.
package ports

import "context"

// CollectionManager creates and drops the review search collection.
// Stores without a collection concept implement VectorDB only.
type CollectionManager interface {
	// EnsureCollection creates the collection for vectors of the given size if missing.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// DeleteCollection drops the collection with every indexed review.
	DeleteCollection(ctx context.Context) error
}
