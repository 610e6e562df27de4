package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "fourplay"

// Metrics holds the Prometheus collectors for engine searches.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// SearchesTotal counts SelectMove calls.
	// Labels: engine (minimax, mcts), path (win, block, double_threat, search, center_fallback, no_children)
	SearchesTotal *prometheus.CounterVec

	// NodesTotal counts minimax nodes evaluated.
	NodesTotal prometheus.Counter

	// CacheHitsTotal counts usable transposition table hits.
	CacheHitsTotal prometheus.Counter

	// IterationsTotal counts completed MCTS iterations.
	IterationsTotal prometheus.Counter

	// FallbacksTotal counts degraded random moves substituted by the caller.
	// Labels: reason (panic, invalid_column)
	FallbacksTotal *prometheus.CounterVec

	// SearchDuration measures wall time per SelectMove call.
	// Labels: engine
	SearchDuration *prometheus.HistogramVec
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "searches_total",
			Help:      "Move selections by engine and decision path.",
		}, []string{"engine", "path"}),
		NodesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "minimax",
			Name:      "nodes_total",
			Help:      "Alpha-beta nodes evaluated.",
		}),
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "minimax",
			Name:      "cache_hits_total",
			Help:      "Transposition table hits deep enough to reuse.",
		}),
		IterationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "mcts",
			Name:      "iterations_total",
			Help:      "Completed select/expand/simulate/backpropagate iterations.",
		}),
		FallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "fallbacks_total",
			Help:      "Random legal moves substituted for a failed search.",
		}, []string{"reason"}),
		SearchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "search_duration_seconds",
			Help:      "Wall time of a move selection.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 4, 8, 16},
		}, []string{"engine"}),
	}
}

func (m *Metrics) observeSearch(info SearchInfo) {
	if m == nil {
		return
	}
	kind := info.Engine.String()
	m.SearchesTotal.WithLabelValues(kind, info.Path).Inc()
	m.SearchDuration.WithLabelValues(kind).Observe(info.Time.Seconds())
	m.NodesTotal.Add(float64(info.Nodes))
	m.CacheHitsTotal.Add(float64(info.CacheHits))
	m.IterationsTotal.Add(float64(info.Iterations))
}

// RecordFallback counts a degraded move substituted by the caller.
func (m *Metrics) RecordFallback(reason string) {
	if m == nil {
		return
	}
	m.FallbacksTotal.WithLabelValues(reason).Inc()
}
