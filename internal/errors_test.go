package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	he := internal.ErrInternal("Algo falló.", internal.WithError(cause), internal.WithRequestID("req-1"))

	assert.Equal(t, "Algo falló.", he.Error())
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Equal(t, "req-1", he.RequestID)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), he.StatusText())
	assert.ErrorIs(t, he, cause)

	he = internal.ErrNotFound("No está.", internal.WithTitle("Perdido"))
	assert.Equal(t, "Perdido", he.StatusText())
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	he := internal.ErrBadRequest("Mal.")
	wrapped := fmt.Errorf("action: %w", he)

	got := internal.AsHTTPError(wrapped)
	require.NotNil(t, got)
	assert.Same(t, he, got)
	assert.Nil(t, internal.AsHTTPError(errors.New("plain")))
}

func TestToHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "http error kept", err: internal.ErrBadRequest("Mal."), code: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("flight: %w", flightapi.ErrNotFound), code: http.StatusNotFound},
		{name: "session expired", err: flightapi.ErrSessionExpired, code: http.StatusUnauthorized},
		{name: "invalid credentials", err: flightapi.ErrInvalidCredentials, code: http.StatusUnauthorized},
		{name: "validation", err: flightapi.ErrValidation, code: http.StatusBadRequest},
		{name: "unavailable", err: flightapi.ErrUnavailable, code: http.StatusServiceUnavailable},
		{name: "anything else", err: errors.New("boom"), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			he := internal.ToHTTPError(tt.err)
			assert.Equal(t, tt.code, he.Code)
			assert.NotEmpty(t, he.Message)
		})
	}
}
