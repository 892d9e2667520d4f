// Package apperror classifies errors crossing the service boundary into the
// three kinds the transport layer distinguishes: validation failures, lookup
// misses, and opaque backend failures.
package apperror

import (
	"errors"
	"fmt"
)

// Kind sentinels. Check with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrBackend    = errors.New("backend error")
)

// Validation returns a validation error with the given message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns a not-found error for the named resource.
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// Backend wraps a store or collaborator failure. The cause remains reachable
// through errors.Is/As.
func Backend(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrBackend, err)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
