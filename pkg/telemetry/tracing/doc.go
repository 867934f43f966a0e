// Package tracing provides OpenTelemetry spans for accounting operations.
//
// New builds an SDK tracer provider with the configured sampler and a
// service.name resource. The package configures no exporter: hosts attach
// span processors through the options passed to New. With tracing enabled
// and no processor attached, spans only lend their trace and span ids to
// log records and are then discarded.
//
//	recorder := tracetest.NewSpanRecorder()
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing,
//	    sdktrace.WithSpanProcessor(recorder))
//
//	ctx, span := tracer.Start(ctx, "tna.estimate")
//	defer span.End()
//	tracing.SetCostAttributes(span, 0.03, "3/100", 100)
//
// When tracing is disabled the tracer is a noop and spans cost nothing.
package tracing
