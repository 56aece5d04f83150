package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned for malformed input: a recurring task
	// without a recurrence type, a dependency id that references no
	// task, out-of-range numeric fields.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is reserved for a future uniqueness constraint on
	// generated occurrences.
	ErrConflict = errors.New("conflict")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
