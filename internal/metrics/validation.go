// Package metrics provides Prometheus metrics for validation operations.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sumire/notifyschema/internal/domain"
)

// ValidationMetrics contains the Prometheus metrics of the validator.
type ValidationMetrics struct {
	ValidationsTotal   *prometheus.CounterVec   // Calls by kind and result
	ViolationsTotal    *prometheus.CounterVec   // Violations by kind and code
	ValidationDuration *prometheus.HistogramVec // Latency by kind
}

// NewValidationMetrics creates the metrics and registers them with registry.
func NewValidationMetrics(registry *prometheus.Registry) (*ValidationMetrics, error) {
	m := &ValidationMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register validation metrics: %w", err)
	}
	return m, nil
}

func (m *ValidationMetrics) initMetrics() {
	m.ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifyschema_validations_total",
			Help: "Total number of validation calls by structure kind and result",
		},
		[]string{"kind", "result"}, // result: valid, invalid
	)

	m.ViolationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifyschema_violations_total",
			Help: "Total number of violations by structure kind and error code",
		},
		[]string{"kind", "code"},
	)

	m.ValidationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notifyschema_validation_duration_seconds",
			Help:    "Time taken to validate one structure",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}, // 10µs to 50ms
		},
		[]string{"kind"},
	)
}

// Describe implements prometheus.Collector.
func (m *ValidationMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.ValidationsTotal.Describe(ch)
	m.ViolationsTotal.Describe(ch)
	m.ValidationDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *ValidationMetrics) Collect(ch chan<- prometheus.Metric) {
	m.ValidationsTotal.Collect(ch)
	m.ViolationsTotal.Collect(ch)
	m.ValidationDuration.Collect(ch)
}

// ObserveValidation records one finished validation call.
func (m *ValidationMetrics) ObserveValidation(kind string, elapsed time.Duration, violations domain.ValidationErrors) {
	result := "valid"
	if len(violations) > 0 {
		result = "invalid"
	}
	m.ValidationsTotal.WithLabelValues(kind, result).Inc()
	m.ValidationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	for _, v := range violations {
		m.ViolationsTotal.WithLabelValues(kind, string(v.Code)).Inc()
	}
}
