package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather data core.
type Metrics struct {
	RemoteRequests  *prometheus.CounterVec // labels: endpoint, outcome={success,timeout,transport,parse}
	RemoteDuration  *prometheus.HistogramVec
	ShapeFallbacks  *prometheus.CounterVec // labels: shape={summary,daily,timeseries,points,overview,flood_risk}
	ResolveDuration prometheus.Histogram
	ResolveFailures prometheus.Counter
	RemoteEnabled   prometheus.Gauge

	// Geo index metrics.
	GeoIndexPoints   prometheus.Gauge
	GeoIndexSearches prometheus.Counter
}

// NewMetrics creates and registers all core metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RemoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercore",
			Name:      "remote_requests_total",
			Help:      "Remote API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		RemoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weathercore",
			Name:      "remote_request_duration_seconds",
			Help:      "Remote API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		ShapeFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercore",
			Name:      "shape_fallbacks_total",
			Help:      "Falls back to bundled data by shape.",
		}, []string{"shape"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weathercore",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a complete three-shape resolution and merge.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ResolveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weathercore",
			Name:      "resolve_failures_total",
			Help:      "Requests with no resolvable summary from any source.",
		}),
		RemoteEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weathercore",
			Name:      "remote_enabled",
			Help:      "1 when a remote endpoint is configured, 0 otherwise.",
		}),
		GeoIndexPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weathercore",
			Name:      "geoindex_points",
			Help:      "Number of observation points in the cached index.",
		}),
		GeoIndexSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weathercore",
			Name:      "geoindex_searches_total",
			Help:      "Display-name searches served by the geo index.",
		}),
	}

	prometheus.MustRegister(
		m.RemoteRequests,
		m.RemoteDuration,
		m.ShapeFallbacks,
		m.ResolveDuration,
		m.ResolveFailures,
		m.RemoteEnabled,
		m.GeoIndexPoints,
		m.GeoIndexSearches,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RemoteRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weathercore", Name: "remote_requests_total"}, []string{"endpoint", "outcome"}),
		RemoteDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weathercore", Name: "remote_request_duration_seconds"}, []string{"endpoint"}),
		ShapeFallbacks:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weathercore", Name: "shape_fallbacks_total"}, []string{"shape"}),
		ResolveDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weathercore", Name: "resolve_duration_seconds"}),
		ResolveFailures:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weathercore", Name: "resolve_failures_total"}),
		RemoteEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weathercore", Name: "remote_enabled"}),
		GeoIndexPoints:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weathercore", Name: "geoindex_points"}),
		GeoIndexSearches: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weathercore", Name: "geoindex_searches_total"}),
	}
}
