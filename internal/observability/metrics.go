package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the sync
// pipeline.
type Metrics struct {
	RecordsFetched  *prometheus.CounterVec // labels: kind={roster,schedule,result,gamelog}
	RecordsAccepted *prometheus.CounterVec // labels: kind
	RecordsWarned   *prometheus.CounterVec // labels: kind
	RecordsRejected *prometheus.CounterVec // labels: kind
	RecordsSkipped  *prometheus.CounterVec // labels: kind (extraction failures)
	SyncRunning     prometheus.Gauge

	SourceRequestDuration *prometheus.HistogramVec // labels: endpoint
	SyncDuration          *prometheus.HistogramVec // labels: kind

	// Enrichment metrics.
	GeocodeResolutions *prometheus.CounterVec // labels: source={cache,static,fuzzy,external}, outcome={resolved,unresolved,error}
	WeatherLookups     *prometheus.CounterVec // labels: outcome={hit,unavailable,error}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsFetched,
		m.RecordsAccepted,
		m.RecordsWarned,
		m.RecordsRejected,
		m.RecordsSkipped,
		m.SyncRunning,
		m.SourceRequestDuration,
		m.SyncDuration,
		m.GeocodeResolutions,
		m.WeatherLookups,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballclub_sync",
			Name:      "records_fetched_total",
			Help:      "Records extracted from upstream documents by sync kind.",
		}, []string{"kind"}),
		RecordsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballclub_sync",
			Name:      "records_accepted_total",
			Help:      "Records that passed validation cleanly.",
		}, []string{"kind"}),
		RecordsWarned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballclub_sync",
			Name:      "records_accepted_with_warnings_total",
			Help:      "Records accepted with at least one validation warning.",
		}, []string{"kind"}),
		RecordsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballclub_sync",
			Name:      "records_rejected_total",
			Help:      "Records rejected by validation.",
		}, []string{"kind"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballclub_sync",
			Name:      "records_skipped_total",
			Help:      "Records skipped during extraction.",
		}, []string{"kind"}),
		SyncRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ballclub_sync",
			Name:      "sync_running",
			Help:      "1 while a sync operation is active, 0 otherwise.",
		}),
		SourceRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ballclub_sync",
			Name:      "source_request_duration_seconds",
			Help:      "Upstream provider request duration by endpoint.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		SyncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ballclub_sync",
			Name:      "sync_duration_seconds",
			Help:      "Duration of one complete sync operation.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}, []string{"kind"}),
		GeocodeResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballclub_sync",
			Name:      "geocode_resolutions_total",
			Help:      "Venue coordinate resolutions by layer and outcome.",
		}, []string{"source", "outcome"}),
		WeatherLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballclub_sync",
			Name:      "weather_lookups_total",
			Help:      "Historical weather lookups by outcome.",
		}, []string{"outcome"}),
	}
}
