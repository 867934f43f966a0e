package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for accounting spans. Custom keys use the "tna." namespace.
const (
	AttrRequestID = "tna.request_id"
	AttrOperation = "tna.operation"
	AttrStrategy  = "tna.tokenizer.strategy"

	AttrInputBytes = "tna.input.bytes"
	AttrTokens     = "tna.tokens.count"
	AttrSpecial    = "tna.tokens.special"

	AttrCost          = "tna.cost.units"
	AttrCostExact     = "tna.cost.exact"
	AttrTokensPerUnit = "tna.cost.tokens_per_unit"

	AttrVocabSource = "tna.vocabulary.source"
	AttrVocabSize   = "tna.vocabulary.size"

	AttrErrorType    = "tna.error.type"
	AttrErrorMessage = "error.message"
)

// SetRequestAttributes sets the request id, operation and strategy.
//
// Example:
//
//	SetRequestAttributes(span, id, "estimate", "whitespace")
func SetRequestAttributes(span trace.Span, requestID, operation, strategy string) {
	span.SetAttributes(
		attribute.String(AttrRequestID, requestID),
		attribute.String(AttrOperation, operation),
		attribute.String(AttrStrategy, strategy),
	)
}

// SetTokenAttributes records the size of the input and of its tokenization.
func SetTokenAttributes(span trace.Span, inputBytes, tokens, special int) {
	span.SetAttributes(
		attribute.Int(AttrInputBytes, inputBytes),
		attribute.Int(AttrTokens, tokens),
		attribute.Int(AttrSpecial, special),
	)
}

// SetCostAttributes records an estimated cost. exact is the rational form
// ("3/100").
func SetCostAttributes(span trace.Span, cost float64, exact string, tokensPerUnit float64) {
	span.SetAttributes(
		attribute.Float64(AttrCost, cost),
		attribute.String(AttrCostExact, exact),
		attribute.Float64(AttrTokensPerUnit, tokensPerUnit),
	)
}

// SetVocabularyAttributes records which vocabulary served the call.
func SetVocabularyAttributes(span trace.Span, source string, size int) {
	if source != "" {
		span.SetAttributes(attribute.String(AttrVocabSource, source))
	}
	span.SetAttributes(attribute.Int(AttrVocabSize, size))
}

// SetErrorAttributes sets error-related attributes on a span.
// This also records the error using span.RecordError() and sets the span status.
//
// Example:
//
//	SetErrorAttributes(span, err, "invalid_input")
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}

	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorType, errorType),
		attribute.String(AttrErrorMessage, err.Error()),
	)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
