// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
	embedder "github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/embedder/openai"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
)

// WriteConfig creates the .whiz directory with the default configuration and loads it back.
func WriteConfig(basePath string) (*config.Config, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("whiz already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// InitHandler prepares the review store and the review vector index.
type InitHandler struct {
	db                ports.RelationalDB
	collectionManager ports.CollectionManager
}

// NewInitHandler creates a new init handler. collectionManager may be nil when
// semantic search is not configured.
func NewInitHandler(db ports.RelationalDB, collectionManager ports.CollectionManager) *InitHandler {
	return &InitHandler{
		db:                db,
		collectionManager: collectionManager,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath     string
	DatabasePath   string
	CollectionName string

	// CollectionErr is set when the vector index could not be prepared.
	// Recommendations and review listing work without it.
	CollectionErr error
}

// Handle creates the review schema and the Qdrant collection.
func (h *InitHandler) Handle(ctx context.Context, cfg *config.Config, basePath string) (*InitResult, error) {
	result := &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: cfg.SQLitePath(basePath),
	}

	if err := h.db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating review schema: %w", err)
	}

	if h.collectionManager != nil {
		if err := h.collectionManager.EnsureCollection(ctx, embedder.VectorSize); err != nil {
			result.CollectionErr = fmt.Errorf("creating collection: %w", err)
			logging.Ctx(ctx).Warn().Err(err).Str("collection", cfg.Qdrant.Collection).Msg("Vector index unavailable")
		} else {
			result.CollectionName = cfg.Qdrant.Collection
		}
	}

	return result, nil
}
