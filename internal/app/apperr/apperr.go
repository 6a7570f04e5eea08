package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	// ErrConcurrencyConflict is returned when an optimistic version check fails.
	// The operation is safe to retry from scratch.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	ErrMissingUserID = fmt.Errorf("%w: user id is required", ErrInvalidInput)
)

// IsRetryable reports whether err is a lost race that a fresh attempt can resolve.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict) || errors.Is(err, ErrConflict)
}
