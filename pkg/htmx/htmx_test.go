package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/flightdesk/pkg/htmx"
)

func request(headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestRequestHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		htmx    bool
		boosted bool
		partial bool
		target  string
	}{
		{name: "plain"},
		{name: "boosted", headers: map[string]string{"HX-Request": "true", "HX-Boosted": "true", "HX-Target": "body"}, htmx: true, boosted: true, target: "body"},
		{name: "fragment", headers: map[string]string{"HX-Request": "true", "HX-Target": "#seat-summary"}, htmx: true, partial: true, target: "seat-summary"},
		{name: "no target", headers: map[string]string{"HX-Request": "true"}, htmx: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := request(tt.headers)
			assert.Equal(t, tt.htmx, htmx.IsHTMX(r))
			assert.Equal(t, tt.boosted, htmx.IsBoosted(r))
			assert.Equal(t, tt.partial, htmx.IsPartial(r))
			assert.Equal(t, tt.target, htmx.Target(r))
		})
	}
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("htmx", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		htmx.Redirect(rec, request(map[string]string{"HX-Request": "true"}), "/login", http.StatusSeeOther)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(htmx.HeaderRedirect))
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		htmx.Redirect(rec, request(nil), "/login", http.StatusSeeOther)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestResponse_Apply(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	htmx.NewResponse(
		htmx.PushURL("/flight/7"),
		htmx.Retarget("#flash"),
		htmx.Reswap(htmx.SwapOuterHTML),
		htmx.Trigger("a", "b"),
		htmx.Refresh(),
	).Apply(rec)

	h := rec.Header()
	assert.Equal(t, "/flight/7", h.Get(htmx.HeaderPushURL))
	assert.Equal(t, "#flash", h.Get(htmx.HeaderRetarget))
	assert.Equal(t, "outerHTML", h.Get(htmx.HeaderReswap))
	assert.Equal(t, "a, b", h.Get(htmx.HeaderTrigger))
	assert.Equal(t, "true", h.Get(htmx.HeaderRefresh))

	empty := httptest.NewRecorder()
	var nilResp *htmx.Response
	nilResp.Apply(empty)
	htmx.NewResponse().Apply(empty)
	assert.Empty(t, empty.Header())
}
