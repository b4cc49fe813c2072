package errors_test

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/gameshelf/internal/errors"
)

func TestAppError_Error(t *testing.T) {
	err := apperrors.NewNotFoundError("game", "g-1")
	assert.Equal(t, "NOT_FOUND: game not found: g-1", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status)

	wrapped := apperrors.NewInternalError(sql.ErrConnDone)
	assert.Contains(t, wrapped.Error(), "INTERNAL_ERROR: internal server error (")
	assert.ErrorIs(t, wrapped, sql.ErrConnDone)
}

func TestAs(t *testing.T) {
	base := apperrors.NewValidationError("hours", "must be positive")
	chained := fmt.Errorf("add session: %w", base)

	got, ok := apperrors.As(chained)
	require.True(t, ok)
	assert.Same(t, base, got)
	assert.Equal(t, "validation failed for hours: must be positive", got.Message)

	_, ok = apperrors.As(sql.ErrNoRows)
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, apperrors.IsNotFound(fmt.Errorf("x: %w", apperrors.NewNotFoundError("game", 1))))
	assert.False(t, apperrors.IsNotFound(apperrors.NewBadRequestError("nope")))
	assert.False(t, apperrors.IsNotFound(nil))
}

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, apperrors.NewUnauthorizedError("missing user").Status)
	unavailable := apperrors.NewUnavailableError("deals", sql.ErrConnDone)
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.Status)
	assert.Equal(t, "deals is unavailable", unavailable.Message)
}
