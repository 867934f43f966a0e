package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"qdpi-hq/tna/pkg/config"
	"qdpi-hq/tna/pkg/telemetry/logging"
	"qdpi-hq/tna/pkg/telemetry/metrics"
	"qdpi-hq/tna/pkg/telemetry/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry bundles the logger, metrics collector and tracer built from one
// telemetry configuration section.
type Telemetry struct {
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
}

// New builds every telemetry component. Logs go to w. Tracer options are
// passed through to tracing.New.
func New(cfg *config.TelemetryConfig, w io.Writer, opts ...sdktrace.TracerProviderOption) (*Telemetry, error) {
	if cfg == nil {
		return nil, errors.New("telemetry config is nil")
	}

	logger, err := logging.FromConfig(&cfg.Logging, w)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	tracer, err := tracing.New(&cfg.Tracing, opts...)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	return &Telemetry{
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:  tracer,
	}, nil
}

// Logger returns the structured logger.
func (t *Telemetry) Logger() *logging.Logger {
	return t.logger
}

// Metrics returns the metrics collector.
func (t *Telemetry) Metrics() *metrics.Collector {
	return t.metrics
}

// Tracer returns the tracer.
func (t *Telemetry) Tracer() *tracing.Tracer {
	return t.tracer
}

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.tracer.Shutdown(ctx)
}
