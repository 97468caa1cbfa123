package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the admission module.
type Metrics struct {
	// Admission outcomes by status, reason and client tier
	DecisionOutcome *prometheus.CounterVec

	// Credit limit oracle latency by result ("ok", "error")
	OracleLatency *prometheus.HistogramVec

	// Overall evaluation latency including collaborator calls
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a Metrics instance registered with reg. Tests pass
// a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_decision_outcomes_total",
			Help: "Total admission outcomes by status, reason and client tier",
		}, []string{"status", "reason", "tier"}),

		OracleLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admission_credit_oracle_duration_seconds",
			Help:    "Duration of credit limit oracle calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"result"}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "admission_evaluate_duration_seconds",
			Help:    "Duration of full admission evaluation including collaborator calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome records an admission outcome. tier is empty when the
// candidate was rejected before a client was resolved.
func (m *Metrics) IncrementOutcome(status, reason, tier string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(status, reason, tier).Inc()
	}
}

// ObserveOracleLatency records the duration of one oracle call.
func (m *Metrics) ObserveOracleLatency(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.OracleLatency.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
