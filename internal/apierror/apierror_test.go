package apierror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError(t *testing.T) {
	err := NewAPIError(ErrNotFound, "patient 7 does not exist", nil)
	assert.Equal(t, ErrNotFound, err.Code)
	assert.Equal(t, "NOT_FOUND: patient 7 does not exist", err.Error())
}

func TestCodeOf(t *testing.T) {
	err := NewAPIError(ErrConflict, "already checked in", nil)
	assert.Equal(t, ErrConflict, CodeOf(err))

	wrapped := fmt.Errorf("handling request: %w", err)
	assert.Equal(t, ErrConflict, CodeOf(wrapped))

	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain error")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestIsCode(t *testing.T) {
	err := NewAPIError(ErrInvalidInput, "priority must be >= 0", nil)
	require.True(t, IsCode(err, ErrInvalidInput))
	require.False(t, IsCode(err, ErrNotFound))
}
