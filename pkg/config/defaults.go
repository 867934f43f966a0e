package config

import "time"

// Default values for configuration fields.
const (
	// Vocabulary defaults
	DefaultVocabularyPath = "./qdpi_vocab.json"

	// Tokenizer defaults
	DefaultTokenizerStrategy = "whitespace"
	DefaultTokenizerEncoding = "cl100k_base"

	// Costs defaults
	DefaultTokensPerUnit = 100.0

	// Display defaults
	DefaultDisplaySize              = "md"
	DefaultDisplayAnimationDuration = 1000 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultLoggingRedactPII   = true
	DefaultMetricsEnabled     = true
	DefaultMetricsNamespace   = "tna"
	DefaultMetricsSubsystem   = "accounting"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "tna"
)

// DefaultTokenCountBuckets are histogram buckets for per-call token counts.
var DefaultTokenCountBuckets = []float64{1, 10, 50, 100, 500, 1000, 5000, 10000}

// DefaultConfig returns a configuration with every field at its default.
// LoadConfig decodes YAML on top of it, so defaults whose zero value is
// meaningful (booleans, the cost divisor) survive when the file omits them
// and an explicit tokens_per_unit of 0 still reaches Validate.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Logging.RedactPII = DefaultLoggingRedactPII
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Costs.TokensPerUnit = DefaultTokensPerUnit
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Vocabulary.Path == "" {
		cfg.Vocabulary.Path = DefaultVocabularyPath
	}

	if cfg.Tokenizer.Strategy == "" {
		cfg.Tokenizer.Strategy = DefaultTokenizerStrategy
	}
	if cfg.Tokenizer.Encoding == "" {
		cfg.Tokenizer.Encoding = DefaultTokenizerEncoding
	}

	if cfg.Display.Size == "" {
		cfg.Display.Size = DefaultDisplaySize
	}
	if cfg.Display.AnimationDuration == 0 {
		cfg.Display.AnimationDuration = DefaultDisplayAnimationDuration
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

// applyTelemetryDefaults applies default values to telemetry configuration.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.TokenCountBuckets) == 0 {
		cfg.Metrics.TokenCountBuckets = append([]float64(nil), DefaultTokenCountBuckets...)
	}

	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
}
