// Package telemetry provides observability for token accounting.
//
// # Components
//
//   - logging: structured logging with PII redaction
//   - metrics: Prometheus metrics on a private registry
//   - tracing: OpenTelemetry spans
//
// # Usage
//
//	tel, err := telemetry.New(&cfg.Telemetry, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("vocabulary loaded", "size", store.Size())
//	tel.Metrics().RecordVocabularyLoad("success", store.Size(), len(store.QDPITokens()))
//
// By default input text written to the logs is redacted:
//
//   - API keys: sk-abc123 → sk-***
//   - Emails: user@example.com → ***@***
//   - IP addresses: 192.168.1.1 → *.*.*.*
//
// Custom redaction patterns can be configured.
package telemetry
