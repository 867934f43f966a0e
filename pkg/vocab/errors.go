package vocab

import (
	"errors"
	"fmt"
)

// ErrLoad is matched by every error returned from Load and Parse.
var ErrLoad = errors.New("vocabulary load failed")

// LoadError reports why a vocabulary resource could not be turned into a
// Store. It is fatal to construction and is never retried.
type LoadError struct {
	// Path is the resource location, empty when parsing from memory.
	Path string

	// Field is the offending top-level or nested field, if any.
	Field string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msg := "vocabulary load failed"
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Path)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field %q", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func missingField(field string) *LoadError {
	return &LoadError{Field: field, Err: errors.New("required field is missing")}
}
