// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

// Outcome labels of a recommendation request.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// MetricInvalid labels requests rejected before a metric was chosen.
const MetricInvalid = "invalid"

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whiz_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"metric", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "whiz_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"metric"},
	)

	RecommendationPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "whiz_recommendation_pool_size",
			Help:    "Number of candidate games compared per request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 .. 262144
		},
	)

	// Catalog Metrics
	CatalogLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whiz_catalog_loads_total",
			Help: "Total number of catalog loads by result",
		},
		[]string{"result"},
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "whiz_catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "whiz_catalog_games",
			Help: "Number of games in the current catalog snapshot",
		},
	)

	CatalogLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "whiz_catalog_last_load_timestamp_seconds",
			Help: "Unix time of the last successful catalog load",
		},
	)

	// Review Metrics
	ReviewsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "whiz_reviews_imported_total",
			Help: "Total number of reviews imported",
		},
	)

	ReviewsIndexed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "whiz_reviews_indexed_total",
			Help: "Total number of reviews embedded into the vector index",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whiz_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "whiz_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// Outcome classifies a recommendation error into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, entities.ErrGameNotFound):
		return OutcomeNotFound
	case errors.Is(err, entities.ErrInvalidSelection), validation.IsValidationError(err):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(metric string, poolSize int, duration time.Duration, err error) {
	RecommendationsTotal.WithLabelValues(metric, Outcome(err)).Inc()
	RecommendationDuration.WithLabelValues(metric).Observe(duration.Seconds())
	if err == nil {
		RecommendationPoolSize.Observe(float64(poolSize))
	}
}

// RecordCatalogLoad records a catalog load attempt.
func RecordCatalogLoad(games int, duration time.Duration, err error) {
	CatalogLoadDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	CatalogLoadsTotal.WithLabelValues("success").Inc()
	CatalogGames.Set(float64(games))
	CatalogLastLoad.Set(float64(time.Now().Unix()))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
