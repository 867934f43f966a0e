// Package processing runs token accounting calls.
//
// The package is organized into sub-packages:
//
//   - tokens: tokenizer strategies over a vocabulary store
//   - costs: conversion of token counts into cost units
//
// Service ties them to a loaded vocabulary and to the telemetry stack.
// Every call gets a request id, a span, metrics and log records.
//
//	cfg := config.GetConfig()
//	svc, err := processing.NewService(cfg, processing.Options{
//		Logger:  tel.Logger(),
//		Metrics: tel.Metrics(),
//		Tracer:  tel.Tracer(),
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := svc.Estimate(ctx, "Some sample text")
//	// res.Count == 3, res.Cost.String() == "3/100"
//
// Reload swaps in a freshly loaded vocabulary. Calls already running keep
// the store they started with.
package processing
