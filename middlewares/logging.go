package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/flightdesk/internal"
)

// RequestLogger logs one record per request after the handler returned.
// Server errors are logged at error level, everything else at info.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil {
				status = internal.ToHTTPError(err).Code
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if c.IsHTMX() {
				attrs = append(attrs, slog.Bool("htmx", true))
			}

			if status >= 500 {
				if err != nil {
					attrs = append(attrs, slog.Any("error", err))
				}
				c.LogError("request", attrs...)
			} else {
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
