package cli

import (
	"errors"
	"fmt"

	"qdpi-hq/tna/pkg/processing/costs"
	"qdpi-hq/tna/pkg/processing/tokens"
	"qdpi-hq/tna/pkg/vocab"
)

// Exit codes returned by the tna binary.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitConfig       = 3
	ExitLoad         = 4
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError wrapping err.
func NewConfigError(field string, err error) *ConfigError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ConfigError{
		Field:   field,
		Message: msg,
		Err:     err,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	var cfgErr *ConfigError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, tokens.ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, vocab.ErrLoad):
		return ExitLoad
	case errors.As(err, &cfgErr), errors.Is(err, costs.ErrInvalidConfiguration):
		return ExitConfig
	default:
		return ExitFailure
	}
}
