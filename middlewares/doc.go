// Package middlewares provides the middleware flightdesk applications run
// with.
//
// # Request ID
//
// RequestID tags each request with an id from X-Request-ID or
// X-Correlation-ID, or a new ULID. RequestIDExtractor adds it to every log
// record written with the request context:
//
//	log, flush := logger.New(cfg.Log, middlewares.RequestIDExtractor(), middlewares.RoutePatternExtractor())
//	defer flush()
//
//	app := flightdesk.New(
//		flightdesk.WithLogger(log),
//		flightdesk.WithMiddleware(
//			middlewares.RequestID(),
//			middlewares.RequestLogger(),
//			middlewares.Recover(),
//		),
//	)
//
// # Recover
//
// Recover converts panics into *PanicError values handed to the app's
// error handler, which decides what the visitor sees.
//
// # RequireAuth
//
// RequireAuth guards form actions. Page navigation has its own guard, so
// it is only needed on POST routes:
//
//	r.Group(func(r flightdesk.Router) {
//		r.Use(middlewares.RequireAuth("/login"))
//		r.POST("/bookings/{id}/cancel", h.cancel)
//	})
package middlewares
