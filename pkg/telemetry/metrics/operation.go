package metrics

import (
	"time"

	"qdpi-hq/tna/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics tracks tokenize and estimate calls.
//
// Metrics:
//   - tna_accounting_operations_total: calls by operation, strategy, status
//   - tna_accounting_operation_duration_seconds: call latency
//   - tna_accounting_tokens_per_call: token count distribution
//   - tna_accounting_tokens_total: tokens counted
//   - tna_accounting_cost_units_total: cost units estimated
//   - tna_accounting_errors_total: failures by operation and kind
type OperationMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	tokensPerCall     *prometheus.HistogramVec
	tokensTotal       *prometheus.CounterVec
	costUnitsTotal    *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
}

// NewOperationMetrics creates and registers operation metrics.
func NewOperationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *OperationMetrics {
	om := &OperationMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operations_total",
				Help:      "Total number of accounting operations",
			},
			[]string{"operation", "strategy", "status"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operation_duration_seconds",
				Help:      "Duration of accounting operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
			},
			[]string{"operation", "strategy"},
		),

		tokensPerCall: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_per_call",
				Help:      "Number of tokens produced per call",
				Buckets:   cfg.TokenCountBuckets,
			},
			[]string{"operation", "strategy"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Total number of tokens counted",
			},
			[]string{"operation", "strategy"},
		),

		costUnitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_units_total",
				Help:      "Total cost units estimated",
			},
			[]string{"strategy"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of failed operations by error kind",
			},
			[]string{"operation", "kind"},
		),
	}

	registry.MustRegister(
		om.operationsTotal,
		om.operationDuration,
		om.tokensPerCall,
		om.tokensTotal,
		om.costUnitsTotal,
		om.errorsTotal,
	)

	return om
}

// RecordCall records one call and its duration.
func (om *OperationMetrics) RecordCall(operation, strategy, status string, duration time.Duration) {
	om.operationsTotal.WithLabelValues(operation, strategy, status).Inc()
	om.operationDuration.WithLabelValues(operation, strategy).Observe(duration.Seconds())
}

// RecordTokens records the token count of a successful call.
func (om *OperationMetrics) RecordTokens(operation, strategy string, tokens int) {
	om.tokensPerCall.WithLabelValues(operation, strategy).Observe(float64(tokens))
	om.tokensTotal.WithLabelValues(operation, strategy).Add(float64(tokens))
}

// RecordCost adds an estimated cost. Negative values are ignored since
// counters only go up.
func (om *OperationMetrics) RecordCost(strategy string, cost float64) {
	if cost < 0 {
		return
	}
	om.costUnitsTotal.WithLabelValues(strategy).Add(cost)
}

// RecordError counts a failure.
func (om *OperationMetrics) RecordError(operation, kind string) {
	om.errorsTotal.WithLabelValues(operation, kind).Inc()
}
