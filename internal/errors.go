package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
)

// HTTPError is a handler failure with everything the error page needs.
type HTTPError struct {
	// Err is the cause, logged but never shown.
	Err error

	// Message is shown to the user.
	Message string

	// Title defaults to the status text.
	Title string

	RequestID string

	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusText returns Title or the standard text for Code.
func (e *HTTPError) StatusText() string {
	if e.Title != "" {
		return e.Title
	}
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Title = title
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError finds an HTTPError in the chain of err, or nil.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}

// ToHTTPError converts any handler error into an HTTPError carrying the
// user-facing API message.
func ToHTTPError(err error) *HTTPError {
	if he := AsHTTPError(err); he != nil {
		return he
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, flightapi.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, flightapi.ErrSessionExpired), errors.Is(err, flightapi.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, flightapi.ErrValidation), errors.Is(err, flightapi.ErrRequest):
		code = http.StatusBadRequest
	case errors.Is(err, flightapi.ErrUnavailable):
		code = http.StatusServiceUnavailable
	}

	return NewHTTPError(code, flightapi.Message(err), WithError(err))
}
