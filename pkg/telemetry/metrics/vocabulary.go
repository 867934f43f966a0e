package metrics

import (
	"qdpi-hq/tna/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// VocabularyMetrics tracks vocabulary loads and the size of the active store.
type VocabularyMetrics struct {
	loadsTotal *prometheus.CounterVec
	size       prometheus.Gauge
	qdpiTokens prometheus.Gauge
}

// NewVocabularyMetrics creates and registers vocabulary metrics.
func NewVocabularyMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *VocabularyMetrics {
	vm := &VocabularyMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "vocabulary_loads_total",
				Help:      "Total number of vocabulary load attempts",
			},
			[]string{"status"},
		),

		size: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "vocabulary_size",
				Help:      "Number of entries in the active vocabulary",
			},
		),

		qdpiTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "vocabulary_qdpi_tokens",
				Help:      "Number of QDPI special tokens in the active vocabulary",
			},
		),
	}

	registry.MustRegister(vm.loadsTotal, vm.size, vm.qdpiTokens)

	return vm
}

// RecordLoad records a load attempt. Gauges only move on success so a
// failed reload leaves them describing the store still in use.
func (vm *VocabularyMetrics) RecordLoad(status string, size, qdpiTokens int) {
	vm.loadsTotal.WithLabelValues(status).Inc()
	if status != StatusSuccess {
		return
	}
	vm.size.Set(float64(size))
	vm.qdpiTokens.Set(float64(qdpiTokens))
}
