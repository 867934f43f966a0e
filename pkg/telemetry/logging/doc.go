// Package logging provides structured logging with PII redaction.
//
// The package wraps log/slog with:
//   - JSON or text output
//   - redaction of API keys, emails, addresses and similar values
//   - request fields (request_id, operation, strategy) taken from context
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    RedactPII: true,
//	})
//
//	ctx = logging.WithRequestID(ctx, id)
//	logger.InfoContext(ctx, "estimated", "tokens", 3)
//
// Input text logged at debug level passes through the redactor first, so
// an email inside a tokenized string is never written verbatim.
package logging
