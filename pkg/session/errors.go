package session

import "errors"

// Session errors.
var (
	// ErrNotConfigured is returned when session functionality is used
	// but no store was configured on the app.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrNotFound is returned when a session or a session value does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")

	// ErrEncode is returned when a value cannot be stored.
	ErrEncode = errors.New("session: failed to encode value")

	// ErrDecode is returned when a stored value or session cannot be decoded.
	ErrDecode = errors.New("session: failed to decode value")
)
