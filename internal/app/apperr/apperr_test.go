package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrConcurrencyConflict))
	assert.True(t, IsRetryable(fmt.Errorf("account update: %w", ErrConcurrencyConflict)))
	assert.True(t, IsRetryable(fmt.Errorf("insert: %w", ErrConflict)))
	assert.False(t, IsRetryable(ErrNotFound))
	assert.False(t, IsRetryable(errors.New("connection refused")))
}

func TestMissingUserIDIsValidationError(t *testing.T) {
	assert.ErrorIs(t, ErrMissingUserID, ErrInvalidInput)
}
