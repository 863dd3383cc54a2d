package similarity

import (
	"fmt"
	"math"
	"strings"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

// MetricKind names a distance strategy.
type MetricKind string

// Supported metrics.
const (
	// MetricHEOM is the heterogeneous range-overlap metric: a value missing on one
	// side is at the maximum distance 1, missing on both sides is at distance 0.
	MetricHEOM MetricKind = "heom"

	// MetricGower is Gower's dissimilarity: attributes missing on either side are
	// weighted out of the average.
	MetricGower MetricKind = "gower"
)

// DefaultMetric is used when no metric is configured.
const DefaultMetric = MetricHEOM

// Metrics lists the supported metric kinds.
var Metrics = []MetricKind{MetricHEOM, MetricGower}

// ParseMetric returns the metric kind named by s. An empty name selects DefaultMetric.
func ParseMetric(s string) (MetricKind, error) {
	switch MetricKind(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMetric, nil
	case MetricHEOM:
		return MetricHEOM, nil
	case MetricGower:
		return MetricGower, nil
	}
	return "", fmt.Errorf("unknown metric %q (valid: %v)", s, Metrics)
}

// Metric computes the dissimilarity in [0, 1] between two feature vectors.
// Implementations must be symmetric and return 0 for identical vectors.
type Metric interface {
	Kind() MetricKind
	Distance(a, b []entities.Value, s *Scale) float64
}

// NewMetric returns the metric implementation for kind.
func NewMetric(kind MetricKind) (Metric, error) {
	switch kind {
	case MetricHEOM, "":
		return HEOM{}, nil
	case MetricGower:
		return Gower{}, nil
	}
	return nil, fmt.Errorf("unknown metric %q", kind)
}

// Scale holds the per-request normalization of the features over a pool.
// A numeric feature whose values span a zero range over the pool is inactive and
// takes no part in any distance.
type Scale struct {
	features []entities.Attribute
	span     []float64
	active   []bool
}

// NewScale computes feature ranges over the given rows.
func NewScale(schema *entities.Schema, rows ...[]entities.Value) *Scale {
	n := schema.NumFeatures()
	s := &Scale{
		features: schema.Features(),
		span:     make([]float64, n),
		active:   make([]bool, n),
	}

	for i, f := range s.features {
		if f.Kind != entities.KindNumeric {
			s.active[i] = true
			continue
		}

		lo, hi := math.Inf(1), math.Inf(-1)
		for _, row := range rows {
			v := row[i]
			if !v.Valid {
				continue
			}
			lo = math.Min(lo, v.Num)
			hi = math.Max(hi, v.Num)
		}

		if span := hi - lo; span > 0 && !math.IsInf(span, 0) {
			s.span[i] = span
			s.active[i] = true
		}
	}

	return s
}

// Active reports whether feature i takes part in distances.
func (s *Scale) Active(i int) bool {
	return s.active[i]
}

// Span returns the range of numeric feature i, 0 for inactive or categorical features.
func (s *Scale) Span(i int) float64 {
	return s.span[i]
}

// diff is the per-attribute distance of two present values.
func (s *Scale) diff(i int, a, b entities.Value) float64 {
	if s.features[i].Kind == entities.KindCategorical {
		if a.Cat == b.Cat {
			return 0
		}
		return 1
	}
	return math.Min(math.Abs(a.Num-b.Num)/s.span[i], 1)
}

// HEOM is the heterogeneous range-overlap metric.
type HEOM struct{}

// Kind returns MetricHEOM.
func (HEOM) Kind() MetricKind { return MetricHEOM }

// Distance returns the weighted mean of the per-attribute distances.
func (HEOM) Distance(a, b []entities.Value, s *Scale) float64 {
	var sum, weights float64
	for i, f := range s.features {
		if !s.active[i] {
			continue
		}

		var d float64
		switch av, bv := a[i], b[i]; {
		case !av.Valid && !bv.Valid:
			d = 0
		case !av.Valid || !bv.Valid:
			d = 1
		default:
			d = s.diff(i, av, bv)
		}

		sum += f.Weight * d
		weights += f.Weight
	}

	if weights == 0 {
		return 0
	}
	return clamp01(sum / weights)
}

// Gower is Gower's mixed-type dissimilarity.
type Gower struct{}

// Kind returns MetricGower.
func (Gower) Kind() MetricKind { return MetricGower }

// Distance returns the weighted mean over the attributes present on both sides.
// With nothing to compare it is 0 when both sides are missing the same attributes
// and 1 otherwise.
func (Gower) Distance(a, b []entities.Value, s *Scale) float64 {
	var sum, weights float64
	mismatch := false
	for i, f := range s.features {
		if !s.active[i] {
			continue
		}

		av, bv := a[i], b[i]
		if !av.Valid || !bv.Valid {
			if av.Valid != bv.Valid {
				mismatch = true
			}
			continue
		}

		sum += f.Weight * s.diff(i, av, bv)
		weights += f.Weight
	}

	if weights == 0 {
		if mismatch {
			return 1
		}
		return 0
	}
	return clamp01(sum / weights)
}

// Engine computes the distance from the query to every row of a pool.
type Engine struct {
	metric Metric
}

// NewEngine creates a distance engine for the given metric.
func NewEngine(metric Metric) *Engine {
	if metric == nil {
		metric = HEOM{}
	}
	return &Engine{metric: metric}
}

// Metric returns the engine's metric.
func (e *Engine) Metric() Metric {
	return e.metric
}

// Distances returns one distance per pool row, in pool order. Ranges are taken over
// the whole pool, which always contains the query.
func (e *Engine) Distances(p *Pool) []float64 {
	c := p.Catalog()
	vectors := make([][]entities.Value, len(p.rows))
	for j, row := range p.rows {
		vectors[j] = c.At(row).Attrs
	}

	scale := NewScale(c.Schema(), vectors...)
	query := vectors[p.queryAt]

	out := make([]float64, len(vectors))
	for j, v := range vectors {
		if j == p.queryAt {
			continue
		}
		out[j] = e.metric.Distance(query, v, scale)
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
