package metrics

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"qdpi-hq/tna/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:           true,
		Namespace:         "test",
		Subsystem:         "metrics",
		TokenCountBuckets: []float64{1, 10, 100},
	}
}

// histogram returns the first series of the named histogram family.
func histogram(t *testing.T, registry *prometheus.Registry, name string) *dto.Histogram {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		if mf.GetType() != dto.MetricType_HISTOGRAM || len(mf.GetMetric()) == 0 {
			t.Fatalf("%s is not a populated histogram", name)
		}
		return mf.GetMetric()[0].GetHistogram()
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.config != cfg {
		t.Error("collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if collector.Registry() == nil {
		t.Fatal("expected a private registry")
	}
	if cfg.Namespace != "tna" || cfg.Subsystem != "accounting" {
		t.Errorf("unexpected defaults %q/%q", cfg.Namespace, cfg.Subsystem)
	}
	if len(cfg.TokenCountBuckets) == 0 {
		t.Error("expected default buckets")
	}
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// Two collectors with the same names must not panic on registration.
	NewCollector(testConfig(), nil)
	NewCollector(testConfig(), nil)
}

func TestCollector_RecordTokenize(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	om := collector.operationMetrics

	collector.RecordTokenize("whitespace", StatusSuccess, 3, time.Millisecond)
	collector.RecordTokenize("whitespace", StatusSuccess, 2, time.Millisecond)
	collector.RecordTokenize("whitespace", StatusError, 0, time.Millisecond)

	if got := testutil.ToFloat64(om.operationsTotal.WithLabelValues(OperationTokenize, "whitespace", StatusSuccess)); got != 2 {
		t.Errorf("success calls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(om.operationsTotal.WithLabelValues(OperationTokenize, "whitespace", StatusError)); got != 1 {
		t.Errorf("error calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(om.tokensTotal.WithLabelValues(OperationTokenize, "whitespace")); got != 5 {
		t.Errorf("tokens = %v, want 5", got)
	}
}

func TestCollector_RecordEstimate(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	om := collector.operationMetrics

	collector.RecordEstimate("whitespace", StatusSuccess, 3, 0.03, time.Millisecond)
	collector.RecordEstimate("whitespace", StatusSuccess, 100, 1.5, time.Millisecond)

	if got := testutil.ToFloat64(om.costUnitsTotal.WithLabelValues("whitespace")); math.Abs(got-1.53) > 1e-9 {
		t.Errorf("cost units = %v, want 1.53", got)
	}
	if got := testutil.ToFloat64(om.tokensTotal.WithLabelValues(OperationEstimate, "whitespace")); got != 103 {
		t.Errorf("tokens = %v, want 103", got)
	}
	if got := testutil.CollectAndCount(om.tokensPerCall); got != 1 {
		t.Errorf("tokens_per_call series = %d, want 1", got)
	}
}

func TestCollector_TokenCountBuckets(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	for _, n := range []int{0, 5, 50, 500} {
		collector.RecordTokenize("whitespace", StatusSuccess, n, time.Millisecond)
	}

	h := histogram(t, collector.Registry(), "test_metrics_tokens_per_call")
	if got := h.GetSampleCount(); got != 4 {
		t.Errorf("sample count = %d, want 4", got)
	}
	if got := h.GetSampleSum(); got != 555 {
		t.Errorf("sample sum = %v, want 555", got)
	}

	// Buckets are cumulative: <=1, <=10, <=100.
	want := []uint64{1, 2, 3}
	buckets := h.GetBucket()
	if len(buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(buckets), len(want))
	}
	for i, b := range buckets {
		if b.GetCumulativeCount() != want[i] {
			t.Errorf("bucket le=%v count = %d, want %d", b.GetUpperBound(), b.GetCumulativeCount(), want[i])
		}
	}
}

func TestCollector_RecordError(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordError(OperationEstimate, "invalid_configuration")
	collector.RecordError(OperationEstimate, "invalid_configuration")
	collector.RecordError(OperationTokenize, "invalid_input")

	om := collector.operationMetrics
	if got := testutil.ToFloat64(om.errorsTotal.WithLabelValues(OperationEstimate, "invalid_configuration")); got != 2 {
		t.Errorf("errors = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(om.errorsTotal); got != 2 {
		t.Errorf("error series = %d, want 2", got)
	}
}

func TestCollector_RecordVocabularyLoad(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	vm := collector.vocabularyMetrics

	collector.RecordVocabularyLoad(StatusSuccess, 10, 3)
	collector.RecordVocabularyLoad(StatusError, 0, 0)

	if got := testutil.ToFloat64(vm.size); got != 10 {
		t.Errorf("size = %v, want 10 after failed reload", got)
	}
	if got := testutil.ToFloat64(vm.qdpiTokens); got != 3 {
		t.Errorf("qdpi tokens = %v, want 3", got)
	}
	if got := testutil.ToFloat64(vm.loadsTotal.WithLabelValues(StatusError)); got != 1 {
		t.Errorf("failed loads = %v, want 1", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordTokenize("whitespace", StatusSuccess, 3, time.Millisecond)
	collector.RecordEstimate("whitespace", StatusSuccess, 3, 0.03, time.Millisecond)
	collector.RecordError(OperationTokenize, "invalid_input")
	collector.RecordVocabularyLoad(StatusSuccess, 10, 3)

	if got := testutil.CollectAndCount(collector.operationMetrics.operationsTotal); got != 0 {
		t.Errorf("disabled collector recorded %d series", got)
	}
	if got := testutil.ToFloat64(collector.vocabularyMetrics.size); got != 0 {
		t.Errorf("disabled collector set size to %v", got)
	}
}

func TestCollector_NilIsDisabled(t *testing.T) {
	var collector *Collector
	if collector.Enabled() {
		t.Error("nil collector must report disabled")
	}
	collector.RecordTokenize("whitespace", StatusSuccess, 1, 0)
}

func TestCollector_WriteText(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordEstimate("whitespace", StatusSuccess, 3, 0.03, time.Millisecond)

	var buf bytes.Buffer
	if err := collector.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# TYPE test_metrics_operations_total counter",
		`test_metrics_operations_total{operation="estimate",status="success",strategy="whitespace"} 1`,
		"test_metrics_cost_units_total",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in exposition:\n%s", want, out)
		}
	}
}
