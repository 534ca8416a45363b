package flightapi

import "errors"

// Sentinel errors. Errors returned by Client methods wrap one of these, so
// callers can branch with errors.Is while showing Error() to the user.
var (
	// ErrSessionExpired is returned for a 401 on any endpoint except login.
	// The caller is expected to drop the token and navigate to login.
	ErrSessionExpired = errors.New("flightapi: session expired")

	// ErrInvalidCredentials is returned when login is rejected.
	ErrInvalidCredentials = errors.New("flightapi: invalid credentials")

	// ErrValidation is returned for 422 responses.
	ErrValidation = errors.New("flightapi: validation failed")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("flightapi: not found")

	// ErrRequest is returned for any other non-2xx response.
	ErrRequest = errors.New("flightapi: request failed")

	// ErrUnavailable is returned when the API cannot be reached or the
	// circuit breaker is open.
	ErrUnavailable = errors.New("flightapi: service unavailable")

	// ErrDecode is returned when a response body cannot be decoded.
	ErrDecode = errors.New("flightapi: failed to decode response")

	// ErrCacheMiss is returned by Cache implementations for absent keys.
	ErrCacheMiss = errors.New("flightapi: cache miss")
)

// User-facing messages.
const (
	msgSessionExpired     = "Sesión expirada. Por favor, inicia sesión de nuevo."
	msgInvalidCredentials = "Email o contraseña incorrectos."
	msgRequestFailed      = "Ocurrió un error en la petición."
	msgUnavailable        = "El servicio no está disponible. Inténtalo más tarde."
	msgValidationPrefix   = "Error de validación: "
	defaultValidationLoc  = "campo"
)

// Error is a failed API call. Message is safe to show to the user.
type Error struct {
	kind     error
	Message  string
	Endpoint string
	Status   int
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel describing the failure class.
func (e *Error) Unwrap() error {
	return e.kind
}

// Message extracts a user-facing message from err. Errors that do not come
// from the API yield the generic request failure message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return msgRequestFailed
}
