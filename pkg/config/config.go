package config

import "time"

// Config is the root configuration for the TNA token accounting service.
// It is loaded from a YAML file, completed with defaults and optionally
// overridden by TNA_* environment variables.
type Config struct {
	// Vocabulary describes where the vocabulary resource lives.
	Vocabulary VocabularyConfig `yaml:"vocabulary"`

	// Tokenizer selects the tokenization strategy.
	Tokenizer TokenizerConfig `yaml:"tokenizer"`

	// Costs contains the TNA cost conversion settings.
	Costs CostsConfig `yaml:"costs"`

	// Display contains defaults for the ECC signal indicator.
	Display DisplayConfig `yaml:"display"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// VocabularyConfig points at the serialized vocabulary resource.
type VocabularyConfig struct {
	// Path is the vocabulary file location.
	// Default: "./qdpi_vocab.json"
	Path string `yaml:"path"`

	// Format forces the resource format ("json" or "yaml").
	// An empty value selects the format from the file extension.
	Format string `yaml:"format"`
}

// TokenizerConfig selects and parameterizes the tokenizer.
type TokenizerConfig struct {
	// Strategy is the tokenizer implementation.
	// Options: "whitespace", "tiktoken"
	// Default: "whitespace"
	Strategy string `yaml:"strategy"`

	// Encoding is the BPE encoding used by the tiktoken strategy.
	// Default: "cl100k_base"
	Encoding string `yaml:"encoding"`
}

// CostsConfig contains TNA cost conversion configuration.
type CostsConfig struct {
	// TokensPerUnit is the number of tokens that make up one TNA cost unit.
	// Must be greater than zero.
	// Default: 100
	TokensPerUnit float64 `yaml:"tokens_per_unit"`
}

// DisplayConfig holds defaults for the ECC signal indicator.
type DisplayConfig struct {
	// Size is the default indicator size.
	// Options: "sm", "md", "lg"
	// Default: "md"
	Size string `yaml:"size"`

	// ClassName is an optional styling class passed through to the host.
	ClassName string `yaml:"class_name"`

	// AnimationDuration is how long the indicator stays in the animating
	// state after a transition into "corrected".
	// Default: 1s
	AnimationDuration time.Duration `yaml:"animation_duration"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPII enables redaction of emails, keys and similar values in
	// logged input text.
	// Default: true
	RedactPII bool `yaml:"redact_pii"`

	// RedactPatterns contains custom redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern is a custom redaction rule.
type RedactPattern struct {
	// Name identifies the pattern.
	Name string `yaml:"name"`

	// Pattern is a regular expression.
	Pattern string `yaml:"pattern"`

	// Replacement is the text substituted for each match.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "tna"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "accounting"
	Subsystem string `yaml:"subsystem"`

	// TokenCountBuckets defines histogram buckets for per-call token counts.
	// Default: [1, 10, 50, 100, 500, 1000, 5000, 10000]
	TokenCountBuckets []float64 `yaml:"token_count_buckets"`
}

// TracingConfig contains tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are recorded. No exporter is built
	// in: unless the host registers a span processor, sampled spans are
	// dropped when they end and only their trace and span ids reach the
	// logs. The tna binary registers none.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces sampled when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is the service name attached to spans.
	// Default: "tna"
	ServiceName string `yaml:"service_name"`
}
