package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/flightdesk/internal/state"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/route"
)

// RoutePatternKey holds the matched route pattern in the request context.
type RoutePatternKey struct{}

// Frame is everything a shell needs around the page content.
type Frame struct {
	Body    templ.Component
	User    *flightapi.User
	Title   string
	Pattern string
	Flashes []cookie.Flash
	Shell   route.Shell
}

// Layout renders a Frame into a complete document.
type Layout func(f Frame) templ.Component

// navEnv performs router decisions on one request.
type navEnv struct {
	c   *requestContext
	err error
}

func (e *navEnv) IsAuthenticated() bool {
	return e.c.IsAuthenticated()
}

func (e *navEnv) SetLocation(location string) {
	e.err = e.c.Redirect(http.StatusFound, location)
}

func (e *navEnv) RenderPublicShell() {
	e.c.page = &page{shell: route.PublicShell}
}

func (e *navEnv) RenderPrivateShell(pattern string) {
	e.c.page = &page{shell: route.PrivateShell, pattern: pattern}
}

func (e *navEnv) Invoke(h PageFunc, params route.Params, title string) {
	if h == nil {
		e.err = ErrNotFound("Página no encontrada.")
		return
	}
	e.err = h(e.c, params, title)
}

var _ route.Env[PageFunc] = (*navEnv)(nil)

// navigate is the GET handler for every location not claimed by another
// route. One request runs the matcher and the guard exactly once.
func (a *App) navigate(c Context) error {
	rc, ok := c.(*requestContext)
	if !ok {
		return ErrInternal("navigation requires the app context")
	}

	a.verifyToken(rc)

	location := rc.request.URL.Path
	env := &navEnv{c: rc}
	res := a.pages.Navigate(location, env)

	rc.Set(RoutePatternKey{}, res.Match.Pattern)
	a.metrics.navigated(res.Entry.Pattern, res.Decision.Outcome)
	rc.LogDebug("navigation",
		slog.String("location", location),
		slog.String("pattern", res.Match.Pattern),
		slog.String("entry", res.Entry.Pattern),
		slog.String("kind", res.Match.Kind.String()),
		slog.Bool("defaulted", res.Defaulted),
		slog.String("outcome", res.Decision.Outcome.String()),
	)

	return env.err
}

// verifyToken confirms a stored token once per session, before the guard
// sees it. Expired tokens are dropped without a round-trip.
func (a *App) verifyToken(c *requestContext) {
	st, err := c.State()
	if err != nil || !st.IsAuthenticated() || st.Verified() || a.api == nil {
		return
	}

	if flightapi.TokenExpired(st.Token(), time.Now()) {
		c.LogInfo("dropping expired token")
		st.ClearToken()
		return
	}

	user, err := a.api.WithToken(st.Token()).Me(c)
	switch {
	case err == nil:
		st.SetUser(user)
	case errors.Is(err, flightapi.ErrUnavailable):
		c.LogWarn("token verification skipped, api unavailable", slog.Any("error", err))
	default:
		c.LogInfo("dropping rejected token", slog.Any("error", err))
		st.ClearToken()
	}
}

// VisitorState returns the visitor state of c. It is a convenience for
// packages that only hold a Context.
func VisitorState(c Context) *state.State {
	st, err := c.State()
	if err != nil {
		return state.New(state.Auth{}, nil)
	}
	return st
}

type navMetrics struct {
	navigations *prometheus.CounterVec
}

func newNavMetrics(reg prometheus.Registerer) *navMetrics {
	if reg == nil {
		return nil
	}
	nav := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flightdesk",
		Subsystem: "router",
		Name:      "navigations_total",
		Help:      "Navigations by resolved entry and guard outcome.",
	}, []string{"entry", "outcome"})
	if err := reg.Register(nav); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				nav = existing
			}
		}
	}
	return &navMetrics{navigations: nav}
}

func (m *navMetrics) navigated(entry string, outcome route.Outcome) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(entry, outcome.String()).Inc()
}
