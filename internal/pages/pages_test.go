package pages_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/pages"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/middlewares"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/htmx"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var (
	testFlight = flightapi.Flight{
		ID:          7,
		Number:      "IB100",
		Airline:     flightapi.Airline{ID: 1, Name: "Iberia", IATA: "IB"},
		Origin:      flightapi.Airport{ID: 1, IATA: "MAD", City: "Madrid"},
		Destination: flightapi.Airport{ID: 2, IATA: "BCN", City: "Barcelona"},
		DepartsAt:   "2025-06-01T08:30:00",
		ArrivesAt:   "2025-06-01T09:45:00",
		Status:      "Programado",
		BaseFare:    100,
	}
	testSeats = []flightapi.Seat{
		{ID: 3, Number: "1A", Category: flightapi.CategoryEconomy, Status: flightapi.SeatAvailable},
		{ID: 4, Number: "1B", Category: flightapi.CategoryEconomy, Status: flightapi.SeatOccupied},
		{ID: 5, Number: "2A", Category: flightapi.CategoryBusiness, Status: flightapi.SeatAvailable, Surcharge: 50},
	}
	testCard   = flightapi.Card{ID: 1, LastFour: "4242", Holder: "ANA PEREZ", Expiry: "12/30", IsDefault: true}
	testTicket = flightapi.Ticket{ID: 11, Code: "ABC123", ReservationID: 55, CardID: 1, PurchasedAt: "2025-06-01T10:00:00"}
)

// fakeAPI is an in-memory flight API. Token "expired" is rejected by every
// authenticated endpoint.
type fakeAPI struct {
	mu         sync.Mutex
	passengers []flightapi.PassengerInput
	purchased  bool
	cancelled  []string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Email o contraseña incorrectos."})
			return
		}
		token := "tok"
		if strings.HasPrefix(r.PostForm.Get("username"), "expired") {
			token = "expired"
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, flightapi.User{ID: 1, FullName: "Ana", Email: "ana@example.com"})
	})
	mux.HandleFunc("GET /flights/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MAD", r.URL.Query().Get("origen"))
		assert.Equal(t, "BCN", r.URL.Query().Get("destino"))
		writeJSON(w, http.StatusOK, []flightapi.Flight{testFlight})
	})
	mux.HandleFunc("GET /flights/search/advanced", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, flightapi.CategoryBusiness, r.URL.Query().Get("categoria_asiento"))
		advanced := testFlight
		advanced.Number = "IB200"
		writeJSON(w, http.StatusOK, []flightapi.Flight{advanced})
	})
	mux.HandleFunc("GET /flights/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Vuelo no existe"})
			return
		}
		writeJSON(w, http.StatusOK, testFlight)
	})
	mux.HandleFunc("GET /flights/{id}/seats", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Vuelo no existe"})
			return
		}
		writeJSON(w, http.StatusOK, testSeats)
	})
	mux.HandleFunc("POST /reservas/{$}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Passengers []flightapi.PassengerInput `json:"pasajeros"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.passengers = body.Passengers
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, flightapi.Reservation{ID: 55, Status: flightapi.ReservationPending, Total: 100})
	})
	mux.HandleFunc("GET /reservas/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, flightapi.ReservationPending, r.URL.Query().Get("estado"))
		writeJSON(w, http.StatusOK, []flightapi.ReservationDetail{f.reservation(flightapi.ReservationPending)})
	})
	mux.HandleFunc("GET /reservas/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "55":
			writeJSON(w, http.StatusOK, f.reservation(flightapi.ReservationPending))
		case "56":
			writeJSON(w, http.StatusOK, f.reservation(flightapi.ReservationConfirmed))
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Reserva no existe"})
		}
	})
	mux.HandleFunc("PATCH /reservas/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.cancelled = append(f.cancelled, r.PathValue("id"))
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, flightapi.Reservation{ID: 55, Status: flightapi.ReservationCancelled})
	})
	mux.HandleFunc("GET /tarjetas/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []flightapi.Card{testCard})
	})
	mux.HandleFunc("POST /billetes/purchase", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 55, body["id_reserva"])
		assert.Equal(t, 1, body["id_tarjeta"])
		f.mu.Lock()
		f.purchased = true
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, testTicket)
	})
	mux.HandleFunc("GET /billetes/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []flightapi.Ticket{testTicket})
	})
	mux.HandleFunc("GET /billetes/confirmation/{code}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, flightapi.Confirmation{
			ID: 11, Code: r.PathValue("code"), Message: "Compra realizada", Total: 100, PurchasedAt: testTicket.PurchasedAt,
		})
	})
	mux.HandleFunc("GET /users/me/profile", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, flightapi.UserProfile{
			User:  flightapi.User{ID: 1, FullName: "Ana", Email: "ana@example.com"},
			Stats: flightapi.UserStats{TotalTickets: 1, TotalCards: 1},
		})
	})
	mux.HandleFunc("PUT /users/me", func(w http.ResponseWriter, r *http.Request) {
		var in flightapi.ProfileUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusOK, flightapi.User{ID: 1, FullName: in.FullName, Email: in.Email})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" && r.Header.Get("Authorization") == "Bearer expired" && r.URL.Path != "/auth/me" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token expirado"})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) reservation(status string) flightapi.ReservationDetail {
	id := 55
	if status != flightapi.ReservationPending {
		id = 56
	}
	return flightapi.ReservationDetail{
		Reservation: flightapi.Reservation{ID: id, Status: status, Total: 100, CreatedAt: "2025-05-20T12:00:00"},
		Passengers: []flightapi.Passenger{{
			ID:             1,
			ReservationID:  id,
			PassengerInput: flightapi.PassengerInput{FullName: "Ana Perez", Document: "X123", SeatID: 3},
		}},
	}
}

// visitor is a browser: it keeps the cookies the app sets.
type visitor struct {
	app     http.Handler
	cookies map[string]*http.Cookie
}

func newVisitor(t *testing.T) (*visitor, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	cookies, err := cookie.New(testSecret)
	require.NoError(t, err)

	app := internal.New(
		internal.WithCookies(cookies),
		internal.WithSession(session.NewMemoryStore()),
		internal.WithAPI(flightapi.New(srv.URL, flightapi.WithRetries(0))),
		internal.WithPages(pages.Router(), views.Layout),
		internal.WithHandlers(pages.Handlers()...),
		internal.WithErrorHandler(pages.HandleError),
		internal.WithMiddleware(middlewares.RequestID()),
		internal.WithMetrics(prometheus.NewRegistry()),
	)
	return &visitor{app: app, cookies: make(map[string]*http.Cookie)}, api
}

func (v *visitor) do(r *http.Request) *httptest.ResponseRecorder {
	for _, c := range v.cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	v.app.ServeHTTP(w, r)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(v.cookies, c.Name)
			continue
		}
		v.cookies[c.Name] = c
	}
	return w
}

func (v *visitor) get(path string) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (v *visitor) post(path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(r)
}

func (v *visitor) signIn(t *testing.T, email string) {
	t.Helper()

	w := v.post("/login", url.Values{"email": {email}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, pages.LandingPath, w.Header().Get("Location"))
}

func TestTable(t *testing.T) {
	t.Parallel()

	router := pages.Router()
	tests := []struct {
		location string
		pattern  string
		title    string
	}{
		{location: "#/login", pattern: "/login", title: "Login"},
		{location: "#/flight/7", pattern: "/flight/:id", title: "Seleccionar Asientos"},
		{location: "#/book/payment/55", pattern: "/book/payment/:id", title: "Realizar Pago"},
		{location: "#/confirmation/ABC123", pattern: "/confirmation/:code", title: "Compra Exitosa"},
		{location: "#/bookings", pattern: "/bookings", title: "Mis Viajes"},
		{location: "#/nowhere", pattern: "/search", title: "Buscar Vuelos"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			t.Parallel()

			res := router.Plan(tt.location, true)
			assert.Equal(t, tt.title, res.Entry.Title)
			if !res.Defaulted {
				assert.Equal(t, tt.pattern, res.Entry.Pattern)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials land on search", func(t *testing.T) {
		t.Parallel()

		v, _ := newVisitor(t)
		v.signIn(t, "Ana@Example.com")

		w := v.get(pages.LandingPath)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hola, Ana")
		assert.Contains(t, w.Body.String(), `aria-current="page"`)
	})

	t.Run("rejected credentials re-render the form", func(t *testing.T) {
		t.Parallel()

		v, _ := newVisitor(t)
		w := v.post("/login", url.Values{"email": {"ana@example.com"}, "password": {"bad"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Email o contraseña incorrectos.")
		assert.Contains(t, w.Body.String(), `value="ana@example.com"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		v, _ := newVisitor(t)
		w := v.post("/login", url.Values{"email": {"ana@example.com"}})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "introduce tu email y contraseña")
	})

	t.Run("logout returns to login", func(t *testing.T) {
		t.Parallel()

		v, _ := newVisitor(t)
		v.signIn(t, "ana@example.com")

		w := v.post("/logout", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, pages.LoginPath, w.Header().Get("Location"))

		w = v.get("/bookings")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, pages.LoginPath, w.Header().Get("Location"))
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	v, _ := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.get("/search")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "IB100")

	w = v.get("/search?origen=mad&destino=bcn&fecha=2025-06-01")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "IB100")
	assert.Contains(t, w.Body.String(), `href="/flight/7"`)

	w = v.get("/search?origen=MAD&destino=BCN&fecha=2025-06-01&categoria_asiento=" + flightapi.CategoryBusiness)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "IB200")
}

func TestSeatSelection(t *testing.T) {
	t.Parallel()

	v, _ := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.get("/flight/7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Seleccionar Asientos: IB100")
	assert.Contains(t, w.Body.String(), "1A")

	summary := func(seats ...string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/flight/7/summary", strings.NewReader(url.Values{"seat": seats}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.Header.Set(htmx.HeaderRequest, "true")
		return v.do(r)
	}

	w = summary("3", "5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="selected-count" class="font-bold">2</span>`)
	assert.Contains(t, w.Body.String(), "$250,00")
	assert.NotContains(t, w.Body.String(), "<html")

	w = summary()
	assert.Contains(t, w.Body.String(), `id="selected-count" class="font-bold">0</span>`)
	assert.Contains(t, w.Body.String(), "disabled")

	w = summary("4")
	assert.Contains(t, w.Body.String(), "ya no está disponible")

	w = v.post("/flight/7/continue", url.Values{"seat": {"4"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/flight/7", w.Header().Get("Location"))
	assert.Contains(t, v.get("/flight/7").Body.String(), "ya no está disponible")
}

func TestFlightNotFound(t *testing.T) {
	t.Parallel()

	v, _ := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.get("/flight/99")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Vuelo no existe")
	assert.Contains(t, w.Body.String(), "Referencia:")
}

func TestBookingFlow(t *testing.T) {
	t.Parallel()

	v, api := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.get("/book/passengers")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, pages.LandingPath, w.Header().Get("Location"))

	w = v.post("/flight/7/continue", url.Values{"seat": {"3"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/book/passengers", w.Header().Get("Location"))

	w = v.get("/book/passengers")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asiento 1A")
	assert.Contains(t, w.Body.String(), "$100,00")

	w = v.post("/book/passengers", url.Values{"nombre_completo": {"Ana Perez"}, "documento_identidad": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "completa los datos de todos los pasajeros")
	assert.Contains(t, w.Body.String(), `value="Ana Perez"`)

	w = v.post("/book/passengers", url.Values{"nombre_completo": {"Ana Perez"}, "documento_identidad": {"x123"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/book/payment/55", w.Header().Get("Location"))
	api.mu.Lock()
	assert.Equal(t, []flightapi.PassengerInput{{FullName: "Ana Perez", Document: "X123", SeatID: 3}}, api.passengers)
	api.mu.Unlock()

	// The booking flow is spent once the reservation exists.
	w = v.get("/book/passengers")
	assert.Equal(t, http.StatusFound, w.Code)

	w = v.get("/book/payment/55")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "**** **** **** 4242")
	assert.Contains(t, w.Body.String(), "#55")

	w = v.post("/book/payment/55/purchase", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/book/payment/55", w.Header().Get("Location"))
	assert.Contains(t, v.get("/book/payment/55").Body.String(), "selecciona o añade una tarjeta")

	w = v.post("/book/payment/55/purchase", url.Values{"tarjeta_id": {"1"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/confirmation/ABC123", w.Header().Get("Location"))
	api.mu.Lock()
	assert.True(t, api.purchased)
	api.mu.Unlock()

	w = v.get("/confirmation/ABC123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ABC123")
	assert.Contains(t, w.Body.String(), "Compra realizada")
}

func TestPaymentOfSettledReservation(t *testing.T) {
	t.Parallel()

	v, _ := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.get("/book/payment/56")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/bookings", w.Header().Get("Location"))
}

func TestBookings(t *testing.T) {
	t.Parallel()

	v, _ := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.get("/bookings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Reserva #55")
	assert.Contains(t, w.Body.String(), "Código: ABC123")
}

func TestActionsRequireAuth(t *testing.T) {
	t.Parallel()

	v, api := newVisitor(t)
	for _, path := range []string{"/bookings/55/cancel", "/book/passengers", "/flight/7/continue", "/profile/cards"} {
		w := v.post(path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, pages.LoginPath, w.Header().Get("Location"), path)
	}
	api.mu.Lock()
	assert.Empty(t, api.cancelled)
	api.mu.Unlock()
}

func TestProfile(t *testing.T) {
	t.Parallel()

	v, _ := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.get("/profile")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="ana@example.com"`)

	w = v.post("/profile", url.Values{"nombre_completo": {"Ana María"}, "email": {"ana@example.com"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/profile", w.Header().Get("Location"))

	w = v.get("/profile")
	assert.Contains(t, w.Body.String(), "Hola, Ana María")
	assert.Contains(t, w.Body.String(), "Perfil actualizado.")

	w = v.post("/profile/password", url.Values{"current_password": {"secret"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, v.get("/profile").Body.String(), "introduce la contraseña actual y la nueva")
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	v, _ := newVisitor(t)
	v.signIn(t, "expired@example.com")

	w := v.get("/profile")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, pages.LoginPath, w.Header().Get("Location"))

	w = v.get("/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sesión expirada.")

	w = v.get("/bookings")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, pages.LoginPath, w.Header().Get("Location"))
}

func TestCancelReservation(t *testing.T) {
	t.Parallel()

	v, api := newVisitor(t)
	v.signIn(t, "ana@example.com")

	w := v.post("/bookings/55/cancel", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/bookings", w.Header().Get("Location"))
	assert.Contains(t, v.get("/bookings").Body.String(), "Reserva cancelada.")

	api.mu.Lock()
	assert.Equal(t, []string{"55"}, api.cancelled)
	api.mu.Unlock()
}
