package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered on the server's own registry so several servers
// can live in one process (and in tests).
type metrics struct {
	searches     *prometheus.CounterVec
	searchTime   prometheus.Histogram
	expanded     prometheus.Histogram
	rebuilds     *prometheus.CounterVec
	blockedCells prometheus.Gauge
	invalidNodes prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		// Labels: outcome (found, exhausted, timeout, invalid_endpoint, canceled, error)
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gridroute",
			Subsystem: "search",
			Name:      "total",
			Help:      "Route searches by outcome",
		}, []string{"outcome"}),
		searchTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gridroute",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Route search wall time in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
		expanded: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gridroute",
			Subsystem: "search",
			Name:      "expanded_nodes",
			Help:      "Nodes closed per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		// Labels: kind (rebuild, reclassify)
		rebuilds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gridroute",
			Subsystem: "grid",
			Name:      "rebuilds_total",
			Help:      "Published grid snapshots by kind",
		}, []string{"kind"}),
		blockedCells: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridroute",
			Subsystem: "grid",
			Name:      "blocked_cells",
			Help:      "Blocked cells in the current snapshot",
		}),
		invalidNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridroute",
			Subsystem: "grid",
			Name:      "invalid_nodes",
			Help:      "Invalid nodes in the current snapshot",
		}),
	}
}
