package flightdesk

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/pages"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/health"
	"github.com/dmitrymomot/flightdesk/pkg/logger"
	"github.com/dmitrymomot/flightdesk/pkg/route"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

// Type aliases - public API
type (
	// App serves the booking site.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access, the visitor state and the
	// authenticated API client.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// PageFunc renders a screen of the navigation table.
	PageFunc = internal.PageFunc

	// Layout wraps a rendered page in its shell.
	Layout = internal.Layout

	// Frame is what a Layout receives.
	Frame = internal.Frame

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// SessionOption configures the session manager.
	SessionOption = internal.SessionOption

	// SessionStore persists server-side sessions.
	SessionStore = session.Store

	// HTTPError is an error with a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// Extractor pulls a request-scoped attribute into log records.
	Extractor = logger.Extractor

	// Pages is the navigation router: the page table plus its guard.
	Pages = route.Router[PageFunc]

	// Scalar is a type Param, Query and Form can convert to.
	Scalar = internal.Scalar
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := flightdesk.New(
//	    flightdesk.WithLogger(log),
//	    flightdesk.WithAPI(flightapi.New("http://localhost:8000")),
//	    flightdesk.WithSession(session.NewMemoryStore()),
//	    flightdesk.WithBookingSite(),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// WithBookingSite registers the booking screens, their form actions and
// the error page.
func WithBookingSite() Option {
	return func(a *App) {
		internal.WithPages(pages.Router(), views.Layout)(a)
		internal.WithHandlers(pages.Handlers()...)(a)
		internal.WithErrorHandler(pages.HandleError)(a)
	}
}

// BookingPages returns the navigation router of the booking site.
func BookingPages() *Pages {
	return pages.Router()
}

// App options

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler. Unknown GET locations
// never reach it: they resolve to the default page.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithStaticFiles mounts a static file handler at the given pattern.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	flightdesk.New(
//	    flightdesk.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithHealthChecks enables /health/live and /health/ready.
// Readiness runs every check in parallel.
func WithHealthChecks(checks health.Checks) Option {
	return internal.WithHealthChecks(checks)
}

// WithMetrics registers the navigation counter on reg and serves it on
// /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return internal.WithMetrics(reg)
}

// WithCookies sets the manager for the booking flow and flash cookies.
func WithCookies(m *cookie.Manager) Option {
	return internal.WithCookies(m)
}

// WithSession enables server-side sessions. The API token and the
// signed-in user live there.
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithAPI sets the flight API client. Requests of a signed-in visitor use
// a copy authenticated with their token.
func WithAPI(c *flightapi.Client) Option {
	return internal.WithAPI(c)
}

// WithPages sets the navigation router and the layout pages render into.
func WithPages(p *Pages, layout Layout) Option {
	return internal.WithPages(p, layout)
}

// Session options

// WithSessionCookieName sets the session cookie name. Defaults to "__sid".
func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

// WithSessionMaxAge sets the session lifetime. Defaults to 30 days.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return internal.WithSessionMaxAge(d)
}

// WithSessionDomain sets the session cookie domain.
func WithSessionDomain(domain string) SessionOption {
	return internal.WithSessionDomain(domain)
}

// WithSessionSecure sets the Secure flag of the session cookie.
func WithSessionSecure(secure bool) SessionOption {
	return internal.WithSessionSecure(secure)
}

// Run options

// Logger sets the logger for server lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
//
// Example:
//
//	app.Run(":8080", flightdesk.ShutdownHook(redis.Shutdown(client)))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Cancelling it shuts the server down.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter, or the zero value when absent or
// unparsable.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter, or def when absent or unparsable.
func Query[T Scalar](c Context, name string, def T) T {
	return internal.Query(c, name, def)
}

// Form returns a typed form value, or the zero value.
func Form[T Scalar](c Context, name string) T {
	return internal.Form[T](c, name)
}

// Errors

// NewHTTPError creates an error rendered with code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// ToHTTPError converts any handler error, including API errors, into an
// HTTPError.
func ToHTTPError(err error) *HTTPError {
	return internal.ToHTTPError(err)
}
