// Package logger builds slog loggers with context extraction and optional
// Sentry forwarding.
//
// Extractors add request-scoped attributes to every record logged with a
// context:
//
//	log, flush := logger.New(logger.Config{Level: "info"},
//		logger.FromContext(requestIDKey{}, "request_id"),
//	)
//	defer flush()
//
//	log.InfoContext(ctx, "page rendered", slog.String("pattern", "/search"))
//	// {"level":"INFO","msg":"page rendered","pattern":"/search","request_id":"01J..."}
//
// With a SentryDSN, warnings and errors are also sent to Sentry and errors
// create issues. Sentry init failures fall back to local logging.
package logger
