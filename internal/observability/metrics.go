package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Dataset loading.
	DatasetRows         prometheus.Gauge
	DatasetLoads        *prometheus.CounterVec // labels: outcome={success,error}
	DatasetLoadDuration prometheus.Histogram

	// View computation.
	ViewsBuilt    *prometheus.CounterVec // labels: surface={page,view,points}
	MatchedRows   prometheus.Histogram
	SkippedPoints prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: outcome={resolved,empty,failed}
	GeocodeCache       *prometheus.CounterVec   // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.DatasetRows,
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.ViewsBuilt,
		m.MatchedRows,
		m.SkippedPoints,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cenipa_dashboard",
			Name:      "dataset_rows",
			Help:      "Number of occurrences in the loaded dataset.",
		}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cenipa_dashboard",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"outcome"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cenipa_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of reading and parsing the dataset file.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ViewsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cenipa_dashboard",
			Name:      "views_built_total",
			Help:      "Filtered views computed, by rendering surface.",
		}, []string{"surface"}),
		MatchedRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cenipa_dashboard",
			Name:      "matched_rows",
			Help:      "Number of occurrences matching the filter per view.",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		SkippedPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cenipa_dashboard",
			Name:      "map_points_skipped_total",
			Help:      "Matching occurrences left off the map for missing or invalid coordinates.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cenipa_dashboard",
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups for occurrences without coordinates, by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cenipa_dashboard",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cenipa_dashboard",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cenipa_dashboard",
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}
}
