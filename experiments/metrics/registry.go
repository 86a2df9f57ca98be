package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "morris"

// Registry exports search and game metrics in the Prometheus format. A nil
// *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	moves          *prometheus.CounterVec
	nodes          prometheus.Counter
	searchDuration prometheus.Histogram
	searchDepth    prometheus.Histogram
	games          *prometheus.CounterVec
	ignoredLines   *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		// Labels: agent, fallback (true, false)
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "moves_total",
			Help:      "Moves chosen by an agent",
		}, []string{"agent", "fallback"}),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "nodes_total",
			Help:      "Search nodes visited",
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Wall-clock time spent choosing a move",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		searchDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "depth",
			Help:      "Deepest completed iteration per move",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}),
		// Labels: winner (blue, orange, none), reason
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selfplay",
			Name:      "games_total",
			Help:      "Finished games by result",
		}, []string{"winner", "reason"}),
		// Labels: reason (malformed, illegal)
		ignoredLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "protocol",
			Name:      "ignored_lines_total",
			Help:      "Opponent lines skipped without changing the position",
		}, []string{"reason"}),
	}
	r.registry.MustRegister(r.moves, r.nodes, r.searchDuration, r.searchDepth, r.games, r.ignoredLines)
	return r
}

func (r *Registry) ObserveSearch(agent string, m SearchMetric) {
	if r == nil {
		return
	}
	fallback := "false"
	if m.Fallback {
		fallback = "true"
	}
	r.moves.WithLabelValues(agent, fallback).Inc()
	r.nodes.Add(float64(m.Nodes))
	r.searchDuration.Observe(m.Duration.Seconds())
	r.searchDepth.Observe(float64(m.Depth))
}

func (r *Registry) ObserveGame(m GameMetric) {
	if r == nil {
		return
	}
	r.games.WithLabelValues(m.Winner.String(), m.Reason).Inc()
}

func (r *Registry) ObserveIgnoredLine(reason string) {
	if r == nil {
		return
	}
	r.ignoredLines.WithLabelValues(reason).Inc()
}

// Handler serves the registry on a /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
