package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/middlewares"
	"github.com/dmitrymomot/flightdesk/pkg/logger"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func serve(app *internal.App, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	app := internal.New(
		internal.WithMiddleware(middlewares.RequestID()),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				seen = middlewares.GetRequestID(c)
				return c.NoContent(http.StatusNoContent)
			})
		})),
	)

	t.Run("generates ulid", func(t *testing.T) {
		w := serve(app, http.MethodGet, "/", nil)
		assert.Len(t, seen, 26)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps upstream id", func(t *testing.T) {
		w := serve(app, http.MethodGet, "/", http.Header{"X-Correlation-Id": {"abc"}})
		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, _ := logger.New(logger.Config{Output: &buf, Level: "debug"}, middlewares.RequestIDExtractor())

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "req-1" })),
			middlewares.RequestLogger(),
		),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/ok", func(c internal.Context) error {
				return c.String(http.StatusOK, "ok")
			})
		})),
	)

	w := serve(app, http.MethodGet, "/ok", nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"path":"/ok"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"size":2`)
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var handled error
	app := internal.New(
		internal.WithMiddleware(middlewares.Recover()),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			handled = err
			return c.String(http.StatusInternalServerError, "boom")
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/panic", func(internal.Context) error { panic("kaboom") })
			r.GET("/fine", func(c internal.Context) error { return c.String(http.StatusOK, "fine") })
		})),
	)

	w := serve(app, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.True(t, middlewares.IsPanicError(handled))
	pe, ok := middlewares.AsPanicError(handled)
	require.True(t, ok)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.Equal(t, "panic: kaboom", pe.Error())

	w = serve(app, http.MethodGet, "/fine", nil)
	assert.Equal(t, "fine", w.Body.String())
}

func TestRecover_WithoutStack(t *testing.T) {
	t.Parallel()

	mw := middlewares.Recover(middlewares.WithoutStack())
	var pe *middlewares.PanicError
	app := internal.New(
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			pe, _ = middlewares.AsPanicError(err)
			return c.NoContent(http.StatusInternalServerError)
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(internal.Context) error { panic(42) }, mw)
		})),
	)

	serve(app, http.MethodGet, "/", nil)
	require.NotNil(t, pe)
	assert.Equal(t, 42, pe.Value)
	assert.Nil(t, pe.Stack)
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithSession(session.NewMemoryStore()),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(middlewares.RequireAuth("/login"))
				r.GET("/private", func(c internal.Context) error { return c.String(http.StatusOK, "secret") })
				r.POST("/private", func(c internal.Context) error { return c.String(http.StatusOK, "secret") })
			})
		})),
	)

	tests := []struct {
		method string
		header http.Header
		status int
	}{
		{method: http.MethodGet, status: http.StatusFound},
		{method: http.MethodPost, status: http.StatusSeeOther},
		{method: http.MethodPost, header: http.Header{"Hx-Request": {"true"}}, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+strings.Repeat(" htmx", len(tt.header)), func(t *testing.T) {
			w := serve(app, tt.method, "/private", tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, w.Body.String(), "secret")
			if tt.header != nil {
				assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
			} else {
				assert.Equal(t, "/login", w.Header().Get("Location"))
			}
		})
	}
}

func TestRequestLogger_ServerError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	app := internal.New(
		internal.WithLogger(log),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/fail", func(internal.Context) error {
				return internal.ErrInternal("down")
			}, middlewares.RequestLogger())
		})),
	)

	w := serve(app, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"status":500`)
}
