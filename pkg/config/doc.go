// Package config provides configuration management for the TNA token
// accounting service.
//
// Configuration is read from a YAML file, completed with defaults and
// optionally overridden from the environment:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("tna.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention TNA_SECTION_FIELD:
//
//   - TNA_VOCABULARY_PATH overrides vocabulary.path
//   - TNA_TOKENIZER_STRATEGY overrides tokenizer.strategy
//   - TNA_COSTS_TOKENS_PER_UNIT overrides costs.tokens_per_unit
//   - TNA_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Validation
//
// Validation errors are collected and reported together:
//
//	configuration validation failed with 2 errors:
//	  - costs.tokens_per_unit: tokens per unit must be a finite number greater than zero
//	  - display.size: unknown size "xl" (must be sm, md or lg)
//
// # Example Configuration
//
//	vocabulary:
//	  path: "./qdpi_vocab.json"
//
//	tokenizer:
//	  strategy: "whitespace"
//
//	costs:
//	  tokens_per_unit: 100
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
// # Hot Reload
//
// Watcher reports debounced file changes so that long-running commands can
// call ReloadConfig and hand the new values to the components that support
// live updates.
package config
