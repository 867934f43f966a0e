package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It starts from DefaultConfig, decodes the file over it, applies remaining
// defaults and validates the result. Environment variables are not
// consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention TNA_SECTION_FIELD (e.g., TNA_COSTS_TOKENS_PER_UNIT) and always
// take precedence over the file.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// DefaultConfigWithEnvOverrides returns the default configuration with
// environment variable overrides applied. It is used when no configuration
// file exists.
func DefaultConfigWithEnvOverrides() (*Config, error) {
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// parse decodes YAML on top of the defaults. An empty document yields the
// default configuration.
func parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Malformed numeric, boolean and duration values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Vocabulary overrides
	if val := os.Getenv("TNA_VOCABULARY_PATH"); val != "" {
		cfg.Vocabulary.Path = val
	}
	if val := os.Getenv("TNA_VOCABULARY_FORMAT"); val != "" {
		cfg.Vocabulary.Format = val
	}

	// Tokenizer overrides
	if val := os.Getenv("TNA_TOKENIZER_STRATEGY"); val != "" {
		cfg.Tokenizer.Strategy = val
	}
	if val := os.Getenv("TNA_TOKENIZER_ENCODING"); val != "" {
		cfg.Tokenizer.Encoding = val
	}

	// Costs overrides
	if val := os.Getenv("TNA_COSTS_TOKENS_PER_UNIT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Costs.TokensPerUnit = f
		}
	}

	// Display overrides
	if val := os.Getenv("TNA_DISPLAY_SIZE"); val != "" {
		cfg.Display.Size = val
	}
	if val := os.Getenv("TNA_DISPLAY_CLASS_NAME"); val != "" {
		cfg.Display.ClassName = val
	}
	if val := os.Getenv("TNA_DISPLAY_ANIMATION_DURATION"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Display.AnimationDuration = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("TNA_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("TNA_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("TNA_TELEMETRY_LOGGING_REDACT_PII"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.RedactPII = b
		}
	}
	if val := os.Getenv("TNA_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("TNA_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("TNA_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}
