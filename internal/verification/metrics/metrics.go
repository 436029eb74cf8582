package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Baseline fetch latencies by domain
	BaselineLatency *prometheus.HistogramVec

	// Verification outcomes by domain and outcome
	VerdictOutcome *prometheus.CounterVec

	// Overall verification latency by domain
	VerifyLatency *prometheus.HistogramVec

	// Sink write failures by domain and target (flag, derived_fields)
	PersistFailures *prometheus.CounterVec
}

// New creates a Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		BaselineLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crossverify_baseline_fetch_duration_seconds",
			Help:    "Duration of baseline provider lookups by domain",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"domain"}),

		VerdictOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crossverify_verdicts_total",
			Help: "Total verification outcomes by domain and outcome",
		}, []string{"domain", "outcome"}),

		VerifyLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crossverify_verify_duration_seconds",
			Help:    "Duration of full verification including baseline fetch and sink writes",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"domain"}),

		PersistFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crossverify_persist_failures_total",
			Help: "Verdict sink write failures by domain and target",
		}, []string{"domain", "target"}),
	}
}

// ObserveBaselineLatency records the duration of one baseline lookup.
func (m *Metrics) ObserveBaselineLatency(domain string, d time.Duration) {
	if m != nil {
		m.BaselineLatency.WithLabelValues(domain).Observe(d.Seconds())
	}
}

// IncrementOutcome records a verification outcome.
func (m *Metrics) IncrementOutcome(domain, outcome string) {
	if m != nil {
		m.VerdictOutcome.WithLabelValues(domain, outcome).Inc()
	}
}

// ObserveVerifyLatency records the total verification duration.
func (m *Metrics) ObserveVerifyLatency(domain string, d time.Duration) {
	if m != nil {
		m.VerifyLatency.WithLabelValues(domain).Observe(d.Seconds())
	}
}

// IncrementPersistFailure records a sink write failure.
func (m *Metrics) IncrementPersistFailure(domain, target string) {
	if m != nil {
		m.PersistFailures.WithLabelValues(domain, target).Inc()
	}
}
