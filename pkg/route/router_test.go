package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/pkg/route"
)

type recordingEnv struct {
	params        route.Params
	title         string
	calls         []string
	authenticated bool
}

func (e *recordingEnv) IsAuthenticated() bool { return e.authenticated }

func (e *recordingEnv) SetLocation(location string) {
	e.calls = append(e.calls, "location:"+location)
}

func (e *recordingEnv) RenderPublicShell() {
	e.calls = append(e.calls, "public")
}

func (e *recordingEnv) RenderPrivateShell(pattern string) {
	e.calls = append(e.calls, "private:"+pattern)
}

func (e *recordingEnv) Invoke(handler string, params route.Params, title string) {
	e.calls = append(e.calls, "invoke:"+handler)
	e.params = params
	e.title = title
}

func flightRouter(t *testing.T) *route.Router[string] {
	t.Helper()

	r, err := route.NewRouter(flightTable(t), route.Policy{Login: "/login", Landing: "/search"})
	require.NoError(t, err)
	return r
}

func TestRouter_Navigate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		location      string
		wantParams    route.Params
		wantTitle     string
		wantCalls     []string
		wantOutcome   route.Outcome
		authenticated bool
	}{
		{
			name:        "private route without token redirects to login",
			location:    "/flight/7",
			wantCalls:   []string{"location:/login"},
			wantOutcome: route.RedirectToLogin,
		},
		{
			name:        "empty location without token redirects to login",
			location:    "",
			wantCalls:   []string{"location:/login"},
			wantOutcome: route.RedirectToLogin,
		},
		{
			name:          "login with token redirects to landing",
			location:      "/login",
			authenticated: true,
			wantCalls:     []string{"location:/search"},
			wantOutcome:   route.RedirectToLanding,
		},
		{
			name:        "login without token renders public shell",
			location:    "/login",
			wantCalls:   []string{"public", "invoke:login"},
			wantParams:  route.Params{"resource": "login"},
			wantTitle:   "Login",
			wantOutcome: route.Render,
		},
		{
			name:          "private route with token renders layout",
			location:      "/book/payment/42",
			authenticated: true,
			wantCalls:     []string{"private:/book/payment/:id", "invoke:payment"},
			wantParams:    route.Params{"resource": "book", "id": "42", "verb": "42"},
			wantTitle:     "Realizar Pago",
			wantOutcome:   route.Render,
		},
		{
			name:          "unknown location renders default entry",
			location:      "/nope",
			authenticated: true,
			wantCalls:     []string{"private:/nope", "invoke:search"},
			wantParams:    route.Params{"resource": "nope"},
			wantTitle:     "Buscar Vuelos",
			wantOutcome:   route.Render,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := &recordingEnv{authenticated: tt.authenticated}
			res := flightRouter(t).Navigate(tt.location, env)

			assert.Equal(t, tt.wantCalls, env.calls)
			assert.Equal(t, tt.wantOutcome, res.Decision.Outcome)
			assert.Equal(t, tt.wantParams, env.params)
			assert.Equal(t, tt.wantTitle, env.title)
		})
	}
}

func TestRouter_Plan(t *testing.T) {
	t.Parallel()

	r := flightRouter(t)

	res := r.Plan("/Confirmation/AbC", true)
	assert.Equal(t, "/confirmation/:code", res.Match.Pattern)
	assert.Equal(t, "AbC", res.Match.Params.Get("code"))
	assert.Equal(t, route.PrivateShell, res.Decision.Shell)
	assert.False(t, res.Decision.Redirect())

	res = r.Plan("/Confirmation/AbC", false)
	assert.True(t, res.Decision.Redirect())
	assert.Equal(t, "/login", res.Decision.Location)
	assert.Equal(t, route.NoShell, res.Decision.Shell)
}

func TestNewRouter(t *testing.T) {
	t.Parallel()

	table := flightTable(t)

	tests := []struct {
		name    string
		policy  route.Policy
		wantErr error
	}{
		{"unknown login", route.Policy{Login: "/signin", Landing: "/search"}, route.ErrUnknownPattern},
		{"unknown landing", route.Policy{Login: "/login", Landing: "/home"}, route.ErrUnknownPattern},
		{"private login", route.Policy{Login: "/profile", Landing: "/search"}, route.ErrInvalidPolicy},
		{"public landing", route.Policy{Login: "/login", Landing: "/login"}, route.ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := route.NewRouter(table, tt.policy)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPolicy_Decide(t *testing.T) {
	t.Parallel()

	p := route.Policy{Login: "/login", Landing: "/search"}

	assert.Equal(t, route.Decision{Outcome: route.RedirectToLogin, Location: "/login"}, p.Decide(true, false))
	assert.Equal(t, route.Decision{Outcome: route.RedirectToLanding, Location: "/search"}, p.Decide(false, true))
	assert.Equal(t, route.Decision{Outcome: route.Render, Shell: route.PrivateShell}, p.Decide(true, true))
	assert.Equal(t, route.Decision{Outcome: route.Render, Shell: route.PublicShell}, p.Decide(false, false))
}
