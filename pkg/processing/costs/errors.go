package costs

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every *InvalidConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid cost configuration")

// InvalidConfigurationError reports an unusable cost setting, such as a
// non-positive tokens-per-unit divisor.
type InvalidConfigurationError struct {
	// Field is the setting name.
	Field string

	// Value is the rejected value.
	Value float64
}

// Error implements the error interface.
func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid cost configuration: %s must be a finite number greater than zero, got %v", e.Field, e.Value)
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
