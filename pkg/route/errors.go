package route

import "errors"

// Route table errors.
var (
	// ErrInvalidPattern is returned when a pattern is empty, does not start
	// with "/", contains uppercase letters or declares an unnamed placeholder.
	ErrInvalidPattern = errors.New("route: invalid pattern")

	// ErrDuplicatePattern is returned when the same pattern is registered twice.
	ErrDuplicatePattern = errors.New("route: duplicate pattern")

	// ErrUnknownPattern is returned when a referenced pattern (default,
	// login or landing) is not registered in the table.
	ErrUnknownPattern = errors.New("route: unknown pattern")

	// ErrInvalidPolicy is returned when the login location is private or the
	// landing location is public.
	ErrInvalidPolicy = errors.New("route: invalid policy")

	// ErrMissingParam is returned by typed param accessors when the param is absent.
	ErrMissingParam = errors.New("route: missing param")

	// ErrInvalidParam is returned by typed param accessors when the value cannot be converted.
	ErrInvalidParam = errors.New("route: invalid param")
)
