// Package metrics provides Prometheus metrics for token accounting.
//
// # Metrics
//
//   - Operation metrics: tokenize/estimate call counts, latency, token
//     counts, estimated cost units and errors by kind
//   - Vocabulary metrics: load attempts and the size of the active store
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordEstimate(
//		"whitespace", // strategy
//		"success",    // status
//		3,            // tokens
//		0.03,         // cost units
//		time.Since(start),
//	)
//
//	// Dump the registry in text exposition format.
//	collector.WriteText(os.Stderr)
//
// The collector registers on a private prometheus.Registry. Hosts that
// serve metrics over HTTP can pass Registry() to promhttp themselves.
package metrics
