package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/flightdesk/internal/state"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/htmx"
	"github.com/dmitrymomot/flightdesk/pkg/route"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

// Context gives handlers the request, the response helpers and the
// visitor's state. It is a context.Context backed by the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// Param returns a chi URL parameter.
	Param(name string) string
	Query(name string) string

	// Form returns a form value, parsing the body on first use.
	Form(name string) string

	// FormValues returns all values of a repeated form field.
	FormValues(name string) []string

	Header(name string) string
	SetHeader(name, value string)

	String(code int, s string) error
	NoContent(code int) error

	// Redirect answers htmx requests with HX-Redirect and others with code.
	Redirect(code int, url string) error

	// Error builds an HTTPError to return from the handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	IsHTMX() bool

	// IsPartial reports whether htmx asked for a fragment.
	IsPartial() bool

	// Render writes component with the given status.
	Render(code int, component templ.Component, opts ...htmx.Option) error

	// RenderPage wraps body in the shell chosen by the navigation guard
	// and renders the whole document.
	RenderPage(code int, title string, body templ.Component) error

	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)
	Get(key any) any

	// State loads the visitor state on first use. Changes are saved
	// before the response header is sent.
	State() (*state.State, error)

	// IsAuthenticated reports whether the visitor holds a token.
	IsAuthenticated() bool

	// SignIn stores token and user and moves the session to a new cookie
	// token.
	SignIn(token string, user *flightapi.User) error

	// SignOut clears the token and the booking flow and destroys the
	// server-side session.
	SignOut() error

	// API returns the API client carrying the visitor's token.
	API() *flightapi.Client

	// Flash queues a message for the next rendered page.
	Flash(kind, text string)

	// Flashes returns and clears queued messages.
	Flashes() []cookie.Flash

	ResponseWriter() *ResponseWriter
}

// page is what the guard decided for the current navigation.
type page struct {
	pattern string
	shell   route.Shell
}

type requestContext struct {
	request        *http.Request
	response       *ResponseWriter
	app            *App
	page           *page
	state          *state.State
	session        *session.Session
	flashes        []cookie.Flash
	sessionLoaded  bool
	flashesLoaded  bool
	hookRegistered bool
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}
	return &requestContext{request: r, response: rw, app: app}
}

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Request() *http.Request         { return c.request }
func (c *requestContext) Response() http.ResponseWriter  { return c.response }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.response }

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) FormValues(name string) []string {
	if err := c.request.ParseForm(); err != nil {
		return nil
	}
	return c.request.Form[name]
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) IsPartial() bool {
	return htmx.IsPartial(c.request)
}

func (c *requestContext) Render(code int, component templ.Component, opts ...htmx.Option) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if len(opts) > 0 && c.IsHTMX() {
		htmx.NewResponse(opts...).Apply(c.response)
	}
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) RenderPage(code int, title string, body templ.Component) error {
	if c.app.layout == nil {
		return c.Render(code, body)
	}

	p := c.currentPage()
	frame := Frame{
		Body:    body,
		Title:   title,
		Pattern: p.pattern,
		Shell:   p.shell,
		Flashes: c.Flashes(),
	}
	if st, err := c.State(); err == nil {
		frame.User = st.User()
	}
	return c.Render(code, c.app.layout(frame))
}

// currentPage returns the guard decision, or resolves the request path
// when the handler runs outside navigation, as form posts do.
func (c *requestContext) currentPage() page {
	if c.page != nil {
		return *c.page
	}
	p := page{shell: route.PublicShell}
	if c.IsAuthenticated() {
		p.shell = route.PrivateShell
	}
	if c.app.pages != nil {
		res := c.app.pages.Table().Resolve(c.request.URL.Path)
		p.pattern = res.Match.Pattern
		if res.Entry.Private {
			p.shell = route.PrivateShell
		} else {
			p.shell = route.PublicShell
		}
	}
	return p
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.app.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.app.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.app.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.app.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.app.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) API() *flightapi.Client {
	if c.app.api == nil {
		panic("internal: API client not configured, use WithAPI")
	}
	st, err := c.State()
	if err != nil || !st.IsAuthenticated() {
		return c.app.api
	}
	return c.app.api.WithToken(st.Token())
}

func (c *requestContext) Flash(kind, text string) {
	if c.app.cookies == nil {
		return
	}
	if err := c.app.cookies.AddFlash(c.response, c.request, kind, text); err != nil {
		c.LogWarn("failed to set flash", slog.Any("error", err))
	}
}

func (c *requestContext) Flashes() []cookie.Flash {
	if c.app.cookies == nil {
		return nil
	}
	if !c.flashesLoaded {
		c.flashes = c.app.cookies.Flashes(c.response, c.request)
		c.flashesLoaded = true
	}
	return c.flashes
}
