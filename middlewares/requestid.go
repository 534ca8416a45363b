package middlewares

import (
	"github.com/oklog/ulid/v2"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are checked in order for an upstream request id.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type requestIDConfig struct {
	generator      func() string
	responseHeader string
	headers        []string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders sets the headers checked for an existing id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.headers = headers
	}
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.generator = gen
	}
}

// WithRequestIDResponseHeader sets the response header carrying the id.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.responseHeader = header
	}
}

// RequestID tags each request with an id taken from the request headers
// or generated as a ULID, and echoes it in the response.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		headers:        DefaultRequestIDHeaders,
		generator:      func() string { return ulid.Make().String() },
		responseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			var id string
			for _, h := range cfg.headers {
				if v := c.Header(h); v != "" {
					id = v
					break
				}
			}
			if id == "" {
				id = cfg.generator()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(cfg.responseHeader, id)
			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c internal.Context) string {
	return internal.ContextValue[string](c, requestIDKey{})
}

// RequestIDExtractor adds request_id to every record logged with the
// request context.
func RequestIDExtractor() logger.Extractor {
	return logger.FromContext(requestIDKey{}, "request_id")
}

// RoutePatternExtractor adds the matched page pattern to records logged
// after navigation resolved it.
func RoutePatternExtractor() logger.Extractor {
	return logger.FromContext(internal.RoutePatternKey{}, "route")
}
