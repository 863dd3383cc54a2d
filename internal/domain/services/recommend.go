package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/similarity"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/metrics"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

// RecommendOptions tunes a single recommendation request. Zero values fall
// back to the service defaults.
type RecommendOptions struct {
	K      int    `json:"k,omitempty" validate:"gte=0,lte=100"`
	Metric string `json:"metric,omitempty" validate:"omitempty,oneof=heom gower"`

	entities.Constraints
}

// RecommendationService recommends games similar to a selected one.
type RecommendationService struct {
	store  *CatalogStore
	metric similarity.MetricKind
	k      int
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(store *CatalogStore, metric similarity.MetricKind, k int) *RecommendationService {
	if metric == "" {
		metric = similarity.MetricHEOM
	}
	if k <= 0 {
		k = similarity.DefaultK
	}
	return &RecommendationService{
		store:  store,
		metric: metric,
		k:      k,
	}
}

// Recommend returns the games most similar to the selection.
func (s *RecommendationService) Recommend(ctx context.Context, selection string, opts RecommendOptions) (*entities.RecommendationSet, error) {
	start := time.Now()
	set, kind, err := s.recommend(ctx, selection, opts)

	poolSize := 0
	if set != nil {
		poolSize = set.PoolSize
	}
	metrics.RecordRecommendation(string(kind), poolSize, time.Since(start), err)

	log := logging.Ctx(ctx)
	if err != nil {
		log.Debug().Err(err).Str("selection", selection).Msg("Recommendation failed")
		return nil, err
	}

	log.Info().
		Int64("query_id", set.Query.ID).
		Str("metric", set.Metric).
		Int("pool_size", set.PoolSize).
		Int("results", len(set.Games)).
		Msg("Recommendation served")

	return set, nil
}

func (s *RecommendationService) recommend(ctx context.Context, selection string, opts RecommendOptions) (*entities.RecommendationSet, similarity.MetricKind, error) {
	kind := s.metric
	opts.Metric = strings.ToLower(strings.TrimSpace(opts.Metric))
	if err := validation.ValidateStruct(opts); err != nil {
		return nil, metrics.MetricInvalid, err
	}

	if opts.Metric != "" {
		parsed, err := similarity.ParseMetric(opts.Metric)
		if err != nil {
			return nil, metrics.MetricInvalid, err
		}
		kind = parsed
	}
	metric, err := similarity.NewMetric(kind)
	if err != nil {
		return nil, kind, err
	}

	k := opts.K
	if k <= 0 {
		k = s.k
	}

	catalog, err := s.store.Current(ctx)
	if err != nil {
		return nil, kind, err
	}

	result, err := similarity.NewRecommender(metric, k).Recommend(catalog, selection, opts.Constraints)
	if err != nil {
		return nil, kind, fmt.Errorf("recommending for %q: %w", selection, err)
	}

	set := &entities.RecommendationSet{
		Query:    result.Query,
		Metric:   string(result.Metric),
		PoolSize: result.PoolSize,
		Games:    make([]entities.RecommendedGame, 0, len(result.Recommendations)),
	}
	for _, rec := range result.Recommendations {
		i, ok := catalog.IndexOf(rec.GameID)
		if !ok {
			continue
		}
		g := catalog.At(i)
		set.Games = append(set.Games, entities.Enrich(rec, &g))
	}

	return set, kind, nil
}
