package tokens

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"qdpi-hq/tna/pkg/vocab"
)

// ErrInvalidInput is matched by every *InvalidInputError.
var ErrInvalidInput = errors.New("invalid tokenizer input")

// InvalidInputError reports input the caller must correct before retrying.
type InvalidInputError struct {
	// Field names the offending argument ("text" or "store").
	Field string

	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid tokenizer input: %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// validate checks the arguments shared by every Tokenizer.
func validate(text string, store *vocab.Store) error {
	if store == nil {
		return &InvalidInputError{Field: "store", Reason: "vocabulary store is not loaded"}
	}
	if !utf8.ValidString(text) {
		return &InvalidInputError{Field: "text", Reason: "text is not valid UTF-8"}
	}
	return nil
}
