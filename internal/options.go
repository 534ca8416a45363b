package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/health"
	"github.com/dmitrymomot/flightdesk/pkg/route"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

// Option configures the App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware adds global middleware, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler sets the handler for errors returned from handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler handles requests no route claims. With pages
// configured only non-GET requests reach it.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithStaticFiles serves subDir of fsys under pattern. Directory listings
// are disabled.
//
//	//go:embed static
//	var assets embed.FS
//
//	internal.WithStaticFiles("/static/", assets, "static")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(sub))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			files.ServeHTTP(w, r)
		})
		a.staticRoutes = append(a.staticRoutes, staticRoute{handler: handler, pattern: pattern})
	}
}

// WithHealthChecks serves /health/live and /health/ready.
func WithHealthChecks(checks health.Checks) Option {
	return func(a *App) {
		a.health = &healthConfig{checks: checks}
	}
}

// WithMetrics serves reg on /metrics and counts navigations into it.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}

// WithCookies sets the manager for the booking flow and flash cookies.
func WithCookies(m *cookie.Manager) Option {
	return func(a *App) {
		a.cookies = m
	}
}

// WithSession keeps the auth state in store.
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessions = NewSessionManager(store, opts...)
	}
}

// WithAPI sets the client pages use through Context.API.
func WithAPI(c *flightapi.Client) Option {
	return func(a *App) {
		a.api = c
	}
}

// WithPages routes every otherwise unclaimed GET through pages, rendering
// the result inside layout.
func WithPages(pages *route.Router[PageFunc], layout Layout) Option {
	return func(a *App) {
		a.pages = pages
		a.layout = layout
	}
}
