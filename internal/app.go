package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/health"
	"github.com/dmitrymomot/flightdesk/pkg/logger"
	"github.com/dmitrymomot/flightdesk/pkg/route"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App wires the router, the visitor state and the page navigation.
// It is immutable after New.
type App struct {
	router          chi.Router
	errorHandler    ErrorHandler
	notFoundHandler HandlerFunc
	logger          *slog.Logger
	cookies         *cookie.Manager
	sessions        *SessionManager
	api             *flightapi.Client
	pages           *route.Router[PageFunc]
	layout          Layout
	metrics         *navMetrics
	registry        *prometheus.Registry
	health          *healthConfig
	middlewares     []Middleware
	handlers        []Handler
	staticRoutes    []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

type healthConfig struct {
	checks health.Checks
}

// New creates an App.
//
//	app := internal.New(
//		internal.WithLogger(log),
//		internal.WithAPI(client),
//		internal.WithSession(session.NewMemoryStore()),
//		internal.WithPages(pages.Router(), views.Layout),
//		internal.WithHandlers(pages.Handlers()...),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.sessions != nil {
		a.sessions.SetLogger(a.logger)
	}
	if a.registry != nil {
		a.metrics = newNavMetrics(a.registry)
	}

	a.setupRoutes()
	return a
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the chi router.
func (a *App) Router() chi.Router {
	return a.router
}

// Pages returns the navigation router, or nil.
func (a *App) Pages() *route.Router[PageFunc] {
	return a.pages
}

// Run serves the app on addr until SIGINT or SIGTERM.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.health != nil {
		a.router.Get("/health/live", health.Live())
		a.router.Get("/health/ready", health.Ready(a.health.checks, health.WithLogger(a.logger)))
	}
	if a.registry != nil {
		a.router.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}

	if a.pages != nil {
		a.router.Get("/*", a.wrapHandler(a.navigate))
	}
}

// wrapHandler adapts h to net/http, reusing the Context created by an
// outer middleware when there is one.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := a.contextFor(w, r)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

type contextKey struct{}

// contextFor returns the Context stored by a previous adapter in the chain
// so state loaded by middleware is seen by handlers.
func (a *App) contextFor(w http.ResponseWriter, r *http.Request) *requestContext {
	if c, ok := r.Context().Value(contextKey{}).(*requestContext); ok {
		c.request = r
		return c
	}
	c := newContext(w, r, a)
	c.Set(contextKey{}, c)
	return c
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.ErrorContext(c, "handler error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil {
			return
		}
	}
	he := ToHTTPError(err)
	http.Error(c.Response(), he.Message, he.Code)
}
