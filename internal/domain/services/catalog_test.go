package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

func TestCatalogStore_CachesUntilExpiry(t *testing.T) {
	store, source, clk := newStore(rankedGames(t), 10*time.Minute)
	ctx := context.Background()

	first, err := store.Current(ctx)
	require.NoError(t, err)
	second, err := store.Current(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.LoadCallCount)

	clk.advance(9 * time.Minute)
	_, err = store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.LoadCallCount)

	clk.advance(time.Minute)
	_, err = store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.LoadCallCount, "expired snapshot reloads")
}

func TestCatalogStore_ZeroTTLLoadsOnce(t *testing.T) {
	store, source, clk := newStore(rankedGames(t), 0)

	for range 3 {
		_, err := store.Current(context.Background())
		require.NoError(t, err)
		clk.advance(24 * time.Hour)
	}
	assert.Equal(t, 1, source.LoadCallCount)
}

func TestCatalogStore_ServesStaleOnReloadFailure(t *testing.T) {
	store, source, clk := newStore(rankedGames(t), time.Minute)
	ctx := context.Background()

	first, err := store.Current(ctx)
	require.NoError(t, err)

	source.Err = errors.New("bucket unavailable")
	clk.advance(2 * time.Minute)

	again, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 2, source.LoadCallCount)
}

func TestCatalogStore_LoadErrors(t *testing.T) {
	t.Run("source error", func(t *testing.T) {
		store, source, _ := newStore(nil, time.Minute)
		source.Err = errors.New("bucket unavailable")

		_, err := store.Current(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading catalog from mock://catalog")
		assert.Contains(t, err.Error(), "bucket unavailable")
	})

	t.Run("empty catalog", func(t *testing.T) {
		empty, err := entities.NewCatalog(entities.DefaultSchema(), nil, "empty")
		require.NoError(t, err)
		store, _, _ := newStore(empty, time.Minute)

		_, err = store.Current(context.Background())
		assert.ErrorIs(t, err, entities.ErrEmptyCatalog)
	})
}

func TestCatalogStore_Refresh(t *testing.T) {
	store, source, _ := newStore(rankedGames(t), time.Hour)
	ctx := context.Background()

	_, err := store.Current(ctx)
	require.NoError(t, err)

	replacement := newCatalog(t, gameRow{id: 99, name: "New"})
	source.Catalog = replacement

	got, err := store.Refresh(ctx)
	require.NoError(t, err)
	assert.Same(t, replacement, got)

	current, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Same(t, replacement, current)
}

func TestCatalogStore_ConcurrentCallersShareOneLoad(t *testing.T) {
	store, source, _ := newStore(rankedGames(t), time.Hour)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Current(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, source.LoadCallCount)
}

func TestCatalogService_Top(t *testing.T) {
	store, _, _ := newStore(rankedGames(t), time.Hour)
	svc := NewCatalogService(store)
	ctx := context.Background()

	top, err := svc.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(1), top[0].ID)
	assert.Equal(t, 1, top[0].Rank)
	assert.InDelta(t, 8.6, top[0].AvgRating, 1e-12)
	assert.Equal(t, "https://boardgamegeek.com/boardgame/1", top[0].Link)
	assert.Equal(t, int64(3), top[2].ID)

	all, err := svc.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6, "default is capped at the catalog size")
	assert.Zero(t, all[4].AvgRating, "unrated game")
}

func TestCatalogService_Find(t *testing.T) {
	store, _, _ := newStore(rankedGames(t), time.Hour)
	svc := NewCatalogService(store)

	g, err := svc.Find(context.Background(), "3: Gloomhaven")
	require.NoError(t, err)
	assert.Equal(t, "Gloomhaven", g.Name)

	_, err = svc.Find(context.Background(), "Nope")
	assert.ErrorIs(t, err, entities.ErrGameNotFound)
}
