package apperr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := apperr.NewValidationError("quantity must be positive")
	assert.Equal(t, "quantity must be positive", err.Error())
	assert.ErrorIs(t, err, apperr.ErrValidation)

	cause := errors.New("parse failure")
	withCause := apperr.NewValidationErrorWithCause("bad order date", cause)
	assert.Equal(t, "bad order date (cause: parse failure)", withCause.Error())
	assert.ErrorIs(t, withCause, apperr.ErrValidation)
}

func TestNotFoundError(t *testing.T) {
	err := apperr.NewNotFoundError("distributor", 42)
	assert.Equal(t, "distributor not found: 42", err.Error())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestConflictError(t *testing.T) {
	err := apperr.NewConflictError("order already delivered")
	assert.Equal(t, "order already delivered", err.Error())
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAuthError(t *testing.T) {
	err := apperr.NewAuthError("token expired")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.NewValidationError("x"), http.StatusBadRequest},
		{apperr.NewNotFoundError("order", 1), http.StatusNotFound},
		{apperr.NewConflictError("locked"), http.StatusConflict},
		{apperr.NewAuthError("no token"), http.StatusUnauthorized},
		{errors.New("datastore unavailable"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, apperr.HTTPStatus(tc.err))
	}
}
