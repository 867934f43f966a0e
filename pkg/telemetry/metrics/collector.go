package metrics

import (
	"time"

	"qdpi-hq/tna/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used as the "operation" label.
const (
	OperationTokenize = "tokenize"
	OperationEstimate = "estimate"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Collector owns every accounting metric. Metrics live on a private
// registry so several collectors (one per test, say) never collide.
//
// All Record methods are no-ops when metrics are disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	operationMetrics  *OperationMetrics
	vocabularyMetrics *VocabularyMetrics
}

// NewCollector creates a collector registering on registry. A nil registry
// gets a fresh private one.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "tna",
//		Subsystem: "accounting",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.TokenCountBuckets) == 0 {
		cfg.TokenCountBuckets = append([]float64(nil), config.DefaultTokenCountBuckets...)
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		operationMetrics:  NewOperationMetrics(cfg, registry),
		vocabularyMetrics: NewVocabularyMetrics(cfg, registry),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordTokenize records one tokenize call.
//
// Parameters:
//   - strategy: tokenizer name ("whitespace", "tiktoken:cl100k_base")
//   - status: StatusSuccess or StatusError
//   - tokens: number of tokens produced (ignored on error)
//   - duration: wall time of the call
func (c *Collector) RecordTokenize(strategy, status string, tokens int, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.operationMetrics.RecordCall(OperationTokenize, strategy, status, duration)
	if status == StatusSuccess {
		c.operationMetrics.RecordTokens(OperationTokenize, strategy, tokens)
	}
}

// RecordEstimate records one estimate call and the cost it produced.
func (c *Collector) RecordEstimate(strategy, status string, tokens int, cost float64, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.operationMetrics.RecordCall(OperationEstimate, strategy, status, duration)
	if status == StatusSuccess {
		c.operationMetrics.RecordTokens(OperationEstimate, strategy, tokens)
		c.operationMetrics.RecordCost(strategy, cost)
	}
}

// RecordError counts a failed operation by error kind
// ("invalid_input", "invalid_configuration", "load", "internal").
func (c *Collector) RecordError(operation, kind string) {
	if !c.Enabled() {
		return
	}
	c.operationMetrics.RecordError(operation, kind)
}

// RecordVocabularyLoad records a vocabulary load attempt. size is the entry
// count of the loaded store and is ignored on error.
func (c *Collector) RecordVocabularyLoad(status string, size, qdpiTokens int) {
	if !c.Enabled() {
		return
	}
	c.vocabularyMetrics.RecordLoad(status, size, qdpiTokens)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
