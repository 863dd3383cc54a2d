package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andyphuawc114/boardgamewhiz/internal/application/handlers"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/similarity"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/catalog/bucket"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
	embedder "github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/embedder/openai"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/relationaldb/sqlite"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config           *config.Config
	CatalogHandler   *handlers.CatalogHandler
	RecommendHandler *handlers.RecommendHandler
	TrendHandler     *handlers.TrendHandler
	ReviewHandler    *handlers.ReviewHandler
	ImportHandler    *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	basePath     string
	relationalDB *sqlite.Repository
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	store, err := newCatalogStore(cfg, cwd)
	if err != nil {
		return err
	}

	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(cwd)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	if err := relationalDB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	metric, err := similarity.ParseMetric(cfg.Recommend.Metric)
	if err != nil {
		return fmt.Errorf("reading recommend.metric: %w", err)
	}

	deps := &internalDeps{
		Deps: Deps{
			Config:           cfg,
			CatalogHandler:   handlers.NewCatalogHandler(store),
			RecommendHandler: handlers.NewRecommendHandler(services.NewRecommendationService(store, metric, cfg.Recommend.K)),
			TrendHandler:     handlers.NewTrendHandler(services.NewTrendService(store)),
			ReviewHandler:    handlers.NewReviewHandler(services.NewReviewService(relationalDB)),
			ImportHandler:    handlers.NewImportHandler(services.NewImportService(relationalDB)),
		},
		basePath:     cwd,
		relationalDB: relationalDB,
	}

	return fn(deps)
}

// withQueryHandler provides the review search handler, backed by Qdrant and the embedder.
func withQueryHandler(ctx context.Context, fn func(*handlers.QueryHandler, ports.CollectionManager) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		handler, repo, err := newQueryHandler(d)
		if err != nil {
			return err
		}
		defer repo.Close()
		return fn(handler, repo)
	})
}

// newQueryHandler wires the embedder and the Qdrant repository. The caller closes the repository.
func newQueryHandler(d *internalDeps) (*handlers.QueryHandler, *qdrant.Repository, error) {
	emb, err := embedder.NewEmbedder(d.Config.Embedder)
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	repo, err := qdrant.NewRepository(d.Config.Qdrant)
	if err != nil {
		return nil, nil, fmt.Errorf("creating qdrant repository: %w", err)
	}

	indexService := services.NewReviewIndexService(emb, repo, d.relationalDB)
	return handlers.NewQueryHandler(indexService), repo, nil
}

// newCatalogStore builds the bucket-backed catalog snapshot store from config.
func newCatalogStore(cfg *config.Config, basePath string) (*services.CatalogStore, error) {
	schema, err := catalogSchema(cfg.Recommend)
	if err != nil {
		return nil, err
	}

	bucketURL, err := cfg.BucketURL(basePath)
	if err != nil {
		return nil, err
	}

	source, err := bucket.NewSource(bucketURL, cfg.Catalog.Key, cfg.Catalog.Format, schema)
	if err != nil {
		return nil, fmt.Errorf("creating catalog source: %w", err)
	}

	return services.NewCatalogStore(source, cfg.RefreshTTL()), nil
}

// catalogSchema applies the configured categorical prefixes and weights to the default schema.
func catalogSchema(cfg config.RecommendConfig) (*entities.Schema, error) {
	schema := entities.DefaultSchema()

	if len(cfg.CategoricalPrefixes) > 0 {
		var err error
		schema, err = entities.NewSchema(schema.Attributes(), cfg.CategoricalPrefixes...)
		if err != nil {
			return nil, fmt.Errorf("building catalog schema: %w", err)
		}
	}

	if len(cfg.Weights) > 0 {
		var err error
		schema, err = schema.WithWeights(cfg.Weights)
		if err != nil {
			return nil, fmt.Errorf("reading recommend.weights: %w", err)
		}
	}

	return schema, nil
}
