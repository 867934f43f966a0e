package signal

import (
	"errors"
	"fmt"
	"strings"

	"qdpi-hq/tna/pkg/config"
)

// Status is the error-correction outcome shown by the indicator.
type Status string

const (
	// StatusClean means no errors were found.
	StatusClean Status = "clean"
	// StatusCorrected means errors were found and corrected.
	StatusCorrected Status = "corrected"
	// StatusError means errors were found that could not be corrected.
	StatusError Status = "error"
)

// Size selects the rendered size of the indicator.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

var (
	// ErrUnknownStatus is returned for a status outside the closed set.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrUnknownSize is returned for a size outside the closed set.
	ErrUnknownSize = errors.New("unknown size")
	// ErrNegativeErrorCount is returned for an error count below zero.
	ErrNegativeErrorCount = errors.New("error count must be non-negative")
)

// ParseStatus converts s into a Status. Surrounding space and case are
// ignored.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusClean, StatusCorrected, StatusError:
		return st, nil
	default:
		return "", fmt.Errorf("%w %q (must be clean, corrected or error)", ErrUnknownStatus, s)
	}
}

// ParseSize converts s into a Size. Surrounding space and case are ignored.
func ParseSize(s string) (Size, error) {
	switch sz := Size(strings.ToLower(strings.TrimSpace(s))); sz {
	case SizeSmall, SizeMedium, SizeLarge:
		return sz, nil
	default:
		return "", fmt.Errorf("%w %q (must be sm, md or lg)", ErrUnknownSize, s)
	}
}

// Props are the inputs of the indicator.
type Props struct {
	// Status defaults to StatusClean.
	Status Status `json:"status"`

	// ErrorCount is the number of corrected errors. Only meaningful when
	// Status is StatusCorrected. Defaults to 0.
	ErrorCount int `json:"errorCount"`

	// Size defaults to SizeMedium.
	Size Size `json:"size"`

	// ClassName is passed through to the host unchanged. Defaults to "".
	ClassName string `json:"className"`
}

// DefaultProps returns the props used when a host supplies none.
func DefaultProps() Props {
	return Props{
		Status: StatusClean,
		Size:   SizeMedium,
	}
}

// PropsFromConfig returns DefaultProps with size and class taken from the
// display section.
func PropsFromConfig(cfg *config.DisplayConfig) (Props, error) {
	p := DefaultProps()
	p.ClassName = cfg.ClassName
	if cfg.Size != "" {
		size, err := ParseSize(cfg.Size)
		if err != nil {
			return Props{}, err
		}
		p.Size = size
	}
	return p, nil
}

// Validate reports the first invalid field.
func (p Props) Validate() error {
	switch p.Status {
	case StatusClean, StatusCorrected, StatusError:
	default:
		return fmt.Errorf("status: %w %q", ErrUnknownStatus, p.Status)
	}
	switch p.Size {
	case SizeSmall, SizeMedium, SizeLarge:
	default:
		return fmt.Errorf("size: %w %q", ErrUnknownSize, p.Size)
	}
	if p.ErrorCount < 0 {
		return fmt.Errorf("errorCount: %w (got %d)", ErrNegativeErrorCount, p.ErrorCount)
	}
	return nil
}

// EffectiveErrorCount is ErrorCount when Status is StatusCorrected and 0
// otherwise.
func (p Props) EffectiveErrorCount() int {
	if p.Status != StatusCorrected {
		return 0
	}
	return p.ErrorCount
}
