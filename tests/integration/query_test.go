package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/relationaldb/sqlite"
)

func TestReviewIndex_EndToEnd(t *testing.T) {
	ctx := context.Background()
	resetCollection(t)

	db, err := sqlite.NewRepository(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "reviews.db")})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.EnsureSchema(ctx))

	reviews := indexedReviews()
	for i := range reviews {
		reviews[i].Embedding = nil
	}
	require.NoError(t, db.SaveReviews(ctx, reviews))

	svc := services.NewReviewIndexService(axisEmbedder{}, testRepo, db).WithBatchSize(3)

	n, err := svc.IndexAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)

	results, err := svc.Search(ctx, "dungeon crawler", 0, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "r3", results[0].ID)

	results, err = svc.Search(ctx, "trading", 13, 5)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = svc.Search(ctx, "   ", 0, 5)
	assert.ErrorIs(t, err, services.ErrEmptyQuery)
}

func TestReviewIndex_ReviewsMatchStore(t *testing.T) {
	ctx := context.Background()
	resetCollection(t)

	db, err := sqlite.NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.EnsureSchema(ctx))

	stored := indexedReviews()[:1]
	stored[0].Embedding = nil
	require.NoError(t, db.SaveReviews(ctx, stored))

	svc := services.NewReviewIndexService(axisEmbedder{}, testRepo, db)
	_, err = svc.IndexAll(ctx)
	require.NoError(t, err)

	results, err := svc.Search(ctx, "trading", 0, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	fromStore, err := db.FindReviewsByIDs(ctx, []string{results[0].ID})
	require.NoError(t, err)
	require.Len(t, fromStore, 1)
	assert.Equal(t, fromStore[0].Comment, results[0].Comment)
	assert.Equal(t, entities.SentimentPositive, results[0].Sentiment)
}
