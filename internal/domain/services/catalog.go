package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/metrics"
)

// DefaultTopGames is the number of games returned by Top when n <= 0.
const DefaultTopGames = 10

type snapshot struct {
	catalog *entities.Catalog
	expires time.Time
}

// CatalogStore serves the current catalog snapshot and reloads it from its
// source once the snapshot is older than the TTL. Callers keep the snapshot
// they received for the whole request; a reload swaps in a new one.
type CatalogStore struct {
	source ports.CatalogSource
	ttl    time.Duration
	now    func() time.Time

	current atomic.Pointer[snapshot]
	loadMu  sync.Mutex
}

// NewCatalogStore creates a store that reloads every ttl. A ttl <= 0 loads once.
func NewCatalogStore(source ports.CatalogSource, ttl time.Duration) *CatalogStore {
	return &CatalogStore{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Current returns the live snapshot, loading it when missing or expired.
// If a reload fails while an older snapshot exists, the older one keeps serving.
func (s *CatalogStore) Current(ctx context.Context) (*entities.Catalog, error) {
	if snap := s.current.Load(); snap != nil && !s.expired(snap) {
		return snap.catalog, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another caller may have reloaded while we waited.
	stale := s.current.Load()
	if stale != nil && !s.expired(stale) {
		return stale.catalog, nil
	}

	catalog, err := s.load(ctx)
	if err != nil {
		if stale != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Str("source", s.source.Describe()).
				Msg("Catalog reload failed, serving previous snapshot")
			return stale.catalog, nil
		}
		return nil, err
	}
	return catalog, nil
}

// Refresh reloads the snapshot regardless of its age.
func (s *CatalogStore) Refresh(ctx context.Context) (*entities.Catalog, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.load(ctx)
}

// load must be called with loadMu held.
func (s *CatalogStore) load(ctx context.Context) (*entities.Catalog, error) {
	start := s.now()
	catalog, err := s.source.Load(ctx)
	if err == nil && (catalog == nil || catalog.Len() == 0) {
		err = entities.ErrEmptyCatalog
	}

	games := 0
	if err == nil {
		games = catalog.Len()
	}
	metrics.RecordCatalogLoad(games, time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", s.source.Describe(), err)
	}

	snap := &snapshot{catalog: catalog}
	if s.ttl > 0 {
		snap.expires = s.now().Add(s.ttl)
	}
	s.current.Store(snap)

	logging.Ctx(ctx).Info().
		Str("source", s.source.Describe()).
		Int("games", games).
		Int("features", catalog.Schema().NumFeatures()).
		Msg("Catalog loaded")

	return catalog, nil
}

func (s *CatalogStore) expired(snap *snapshot) bool {
	return !snap.expires.IsZero() && !s.now().Before(snap.expires)
}

// CatalogService answers catalog browsing requests.
type CatalogService struct {
	store *CatalogStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Top returns the first n games of the snapshot, which is rank ordered.
func (s *CatalogService) Top(ctx context.Context, n int) ([]entities.RankedGame, error) {
	if n <= 0 {
		n = DefaultTopGames
	}

	catalog, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}

	n = min(n, catalog.Len())
	games := make([]entities.RankedGame, 0, n)
	for i := range n {
		g := catalog.At(i)
		games = append(games, entities.RankedGame{
			Game:      g,
			AvgRating: valueOrZero(catalog.Value(i, entities.AttrRating)),
			Link:      g.Link(),
		})
	}
	return games, nil
}

// Find resolves a selection to a game of the current snapshot.
func (s *CatalogService) Find(ctx context.Context, selection string) (entities.Game, error) {
	catalog, err := s.store.Current(ctx)
	if err != nil {
		return entities.Game{}, err
	}

	i, err := catalog.Lookup(selection)
	if err != nil {
		return entities.Game{}, err
	}
	return catalog.At(i), nil
}

func valueOrZero(v entities.Value) float64 {
	if !v.Valid {
		return 0
	}
	return v.Num
}
