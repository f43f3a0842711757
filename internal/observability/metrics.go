package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analyzer runs and the subscriber registry.
type Metrics struct {
	Runs        prometheus.Counter
	RunsFailed  prometheus.Counter
	RunDuration prometheus.Histogram

	// SectionFound tracks whether the last fetched bulletin carried a
	// special features section.
	SectionFound prometheus.Gauge

	NotificationsPublished prometheus.Counter
	PublishErrors          prometheus.Counter
	PersistenceErrors      *prometheus.CounterVec // labels: store={arrivals,summary,image}

	Registrations *prometheus.CounterVec // labels: outcome={ok,duplicate,invalid,error}
	Unsubscribes  *prometheus.CounterVec // labels: outcome={ok,not_found,invalid,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Runs,
		m.RunsFailed,
		m.RunDuration,
		m.SectionFound,
		m.NotificationsPublished,
		m.PublishErrors,
		m.PersistenceErrors,
		m.Registrations,
		m.Unsubscribes,
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
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bulletin_notifier",
			Name:      "analysis_runs_total",
			Help:      "Total analyzer runs started.",
		}),
		RunsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bulletin_notifier",
			Name:      "analysis_runs_failed_total",
			Help:      "Analyzer runs that ended with an error.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bulletin_notifier",
			Name:      "analysis_run_duration_seconds",
			Help:      "Duration of a complete fetch-analyze-notify-persist run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SectionFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bulletin_notifier",
			Name:      "special_features_section_found",
			Help:      "1 when the last bulletin contained a special features section, 0 otherwise.",
		}),
		NotificationsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bulletin_notifier",
			Name:      "notifications_published_total",
			Help:      "Notifications published to location topics.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bulletin_notifier",
			Name:      "publish_errors_total",
			Help:      "Failed notification publishes.",
		}),
		PersistenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bulletin_notifier",
			Name:      "persistence_errors_total",
			Help:      "Swallowed persistence failures by store.",
		}, []string{"store"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bulletin_notifier",
			Name:      "registrations_total",
			Help:      "Registration requests by outcome.",
		}, []string{"outcome"}),
		Unsubscribes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bulletin_notifier",
			Name:      "unsubscribes_total",
			Help:      "Unsubscribe requests by outcome.",
		}, []string{"outcome"}),
	}
}
