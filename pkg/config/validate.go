package config

import (
	"fmt"
	"math"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "costs.tokens_per_unit").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateVocabulary(&cfg.Vocabulary)...)
	errs = append(errs, validateTokenizer(&cfg.Tokenizer)...)
	errs = append(errs, validateCosts(&cfg.Costs)...)
	errs = append(errs, validateDisplay(&cfg.Display)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateVocabulary(cfg *VocabularyConfig) []FieldError {
	var errs []FieldError

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "vocabulary.path",
			Message: "vocabulary path is required",
		})
	}

	switch cfg.Format {
	case "", "json", "yaml":
	default:
		errs = append(errs, FieldError{
			Field:   "vocabulary.format",
			Message: fmt.Sprintf("unsupported format %q (must be json or yaml)", cfg.Format),
		})
	}

	return errs
}

func validateTokenizer(cfg *TokenizerConfig) []FieldError {
	var errs []FieldError

	switch cfg.Strategy {
	case "whitespace":
	case "tiktoken":
		if cfg.Encoding == "" {
			errs = append(errs, FieldError{
				Field:   "tokenizer.encoding",
				Message: "encoding is required for the tiktoken strategy",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "tokenizer.strategy",
			Message: fmt.Sprintf("unknown strategy %q (must be whitespace or tiktoken)", cfg.Strategy),
		})
	}

	return errs
}

func validateCosts(cfg *CostsConfig) []FieldError {
	var errs []FieldError

	if math.IsNaN(cfg.TokensPerUnit) || math.IsInf(cfg.TokensPerUnit, 0) || cfg.TokensPerUnit <= 0 {
		errs = append(errs, FieldError{
			Field:   "costs.tokens_per_unit",
			Message: "tokens per unit must be a finite number greater than zero",
		})
	}

	return errs
}

func validateDisplay(cfg *DisplayConfig) []FieldError {
	var errs []FieldError

	switch cfg.Size {
	case "sm", "md", "lg":
	default:
		errs = append(errs, FieldError{
			Field:   "display.size",
			Message: fmt.Sprintf("unknown size %q (must be sm, md or lg)", cfg.Size),
		})
	}

	if cfg.AnimationDuration < 0 {
		errs = append(errs, FieldError{
			Field:   "display.animation_duration",
			Message: "animation duration must not be negative",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown log level %q", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown log format %q", cfg.Logging.Format),
		})
	}

	for i, p := range cfg.Logging.RedactPatterns {
		if p.Name == "" || p.Pattern == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("telemetry.logging.redact_patterns[%d]", i),
				Message: "name and pattern are required",
			})
		}
	}

	switch cfg.Tracing.Sampler {
	case "always", "never", "ratio":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("unknown sampler %q (must be always, never or ratio)", cfg.Tracing.Sampler),
		})
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	return errs
}
