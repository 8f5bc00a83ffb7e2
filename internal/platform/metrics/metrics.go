package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Methods are
// nil-safe so tests can pass a nil *Metrics.
type Metrics struct {
	// Confirmation outcomes by terminal result
	ConfirmationOutcome *prometheus.CounterVec

	// Snapshot refresh observability
	RefreshDuration prometheus.Histogram
	RefreshFailures prometheus.Counter

	// Remote append retries (attempts beyond the first)
	AppendRetries prometheus.Counter
}

// New creates and registers all metrics.
func New() *Metrics {
	return &Metrics{
		ConfirmationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_confirmations_total",
			Help: "Total confirmation requests by terminal outcome",
		}, []string{"outcome"}),

		RefreshDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "checkin_refresh_duration_seconds",
			Help:    "Duration of full roster and day-table refreshes",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		RefreshFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkin_refresh_failures_total",
			Help: "Total refresh cycles that aborted and kept the previous snapshot",
		}),

		AppendRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkin_append_retries_total",
			Help: "Total retried remote append attempts",
		}),
	}
}

// IncrementOutcome records a confirmation terminal outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.ConfirmationOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveRefresh records the duration of a successful refresh.
func (m *Metrics) ObserveRefresh(d time.Duration) {
	if m != nil {
		m.RefreshDuration.Observe(d.Seconds())
	}
}

// IncrementRefreshFailure records an aborted refresh cycle.
func (m *Metrics) IncrementRefreshFailure() {
	if m != nil {
		m.RefreshFailures.Inc()
	}
}

// IncrementAppendRetry records one retried remote append attempt.
func (m *Metrics) IncrementAppendRetry() {
	if m != nil {
		m.AppendRetries.Inc()
	}
}
