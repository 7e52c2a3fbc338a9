package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the map build.
type Metrics struct {
	// Feed fetch metrics.
	FeedRequests *prometheus.CounterVec   // labels: feed={earthquakes,plates}, outcome={success,error}
	FeedDuration *prometheus.HistogramVec // labels: feed

	// Decode metrics.
	FeaturesDecoded *prometheus.CounterVec // labels: feed
	FeaturesSkipped *prometheus.CounterVec // labels: feed

	MarkersRendered     prometheus.Gauge
	InitializationState prometheus.Gauge
	RenderDuration      prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "feed_requests_total",
			Help:      "GeoJSON feed requests by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FeedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "feed_request_duration_seconds",
			Help:      "GeoJSON feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"feed"}),
		FeaturesDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "features_decoded_total",
			Help:      "Features accepted from a feed.",
		}, []string{"feed"}),
		FeaturesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "features_skipped_total",
			Help:      "Malformed features skipped while decoding a feed.",
		}, []string{"feed"}),
		MarkersRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "markers_rendered",
			Help:      "Earthquake markers in the most recently assembled map.",
		}),
		InitializationState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "initialization_state",
			Help:      "0 idle, 1 have earthquakes, 2 ready, 3 failed.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "render_duration_seconds",
			Help:      "Duration of map assembly from decoded feeds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	prometheus.MustRegister(
		m.FeedRequests,
		m.FeedDuration,
		m.FeaturesDecoded,
		m.FeaturesSkipped,
		m.MarkersRendered,
		m.InitializationState,
		m.RenderDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FeedRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_map", Name: "feed_requests_total"}, []string{"feed", "outcome"}),
		FeedDuration:        prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "quake_map", Name: "feed_request_duration_seconds"}, []string{"feed"}),
		FeaturesDecoded:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_map", Name: "features_decoded_total"}, []string{"feed"}),
		FeaturesSkipped:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_map", Name: "features_skipped_total"}, []string{"feed"}),
		MarkersRendered:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_map", Name: "markers_rendered"}),
		InitializationState: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_map", Name: "initialization_state"}),
		RenderDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_map", Name: "render_duration_seconds"}),
	}
}
