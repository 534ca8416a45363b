package pages

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/middlewares"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/route"
)

// Guard targets.
const (
	LoginPath   = "/login"
	LandingPath = "/search"
)

const errorTitle = "Error"

type entry = route.Entry[internal.PageFunc]

// Table returns the page table in matching order. /search is the default
// for unknown locations.
func Table() *route.Table[internal.PageFunc] {
	return route.MustTable(LandingPath,
		entry{Pattern: "/login", Title: "Login", Handler: page(loginPage)},
		entry{Pattern: "/search", Title: "Buscar Vuelos", Handler: page(searchPage), Private: true},
		entry{Pattern: "/flight/:id", Title: "Seleccionar Asientos", Handler: page(flightPage), Private: true},
		entry{Pattern: "/book/passengers", Title: "Datos de Pasajeros", Handler: page(passengersPage), Private: true},
		entry{Pattern: "/book/payment/:id", Title: "Realizar Pago", Handler: page(paymentPage), Private: true},
		entry{Pattern: "/confirmation/:code", Title: "Compra Exitosa", Handler: page(confirmationPage), Private: true},
		entry{Pattern: "/bookings", Title: "Mis Viajes", Handler: page(bookingsPage), Private: true},
		entry{Pattern: "/profile", Title: "Mi Perfil", Handler: page(profilePage), Private: true},
	)
}

// Router returns the navigation router over Table.
func Router() *route.Router[internal.PageFunc] {
	r, err := route.NewRouter(Table(), route.Policy{Login: LoginPath, Landing: LandingPath})
	if err != nil {
		panic(err)
	}
	return r
}

// Handlers returns the form actions of every page.
func Handlers() []internal.Handler {
	return []internal.Handler{
		&Auth{},
		&Flights{},
		&Booking{},
		&Account{},
	}
}

// page renders a controller failure in place of the page content.
func page(fn internal.PageFunc) internal.PageFunc {
	return func(c internal.Context, params route.Params, title string) error {
		err := fn(c, params, title)
		if err == nil || c.Written() {
			return err
		}
		return renderError(c, err)
	}
}

// HandleError is the app error handler. Action failures and recovered
// panics are rendered the same way page failures are.
func HandleError(c internal.Context, err error) error {
	if pe, ok := middlewares.AsPanicError(err); ok {
		err = internal.ErrInternal("Ocurrió un error inesperado.", internal.WithError(pe))
	}
	return renderError(c, err)
}

func renderError(c internal.Context, err error) error {
	if errors.Is(err, flightapi.ErrSessionExpired) {
		return sessionExpired(c, err)
	}

	he := internal.ToHTTPError(err)
	attrs := []any{slog.Int("status", he.Code), slog.Any("error", err)}
	if he.Code >= http.StatusInternalServerError {
		c.LogError("page failed", attrs...)
	} else {
		c.LogWarn("page failed", attrs...)
	}

	body := views.ErrorContent(views.ErrorData{Message: he.Message, RequestID: middlewares.GetRequestID(c)})
	if c.IsPartial() {
		return c.Render(he.Code, body)
	}
	return c.RenderPage(he.Code, errorTitle, body)
}

// sessionExpired drops the rejected token and sends the visitor to login.
func sessionExpired(c internal.Context, err error) error {
	if st, serr := c.State(); serr == nil {
		st.ClearToken()
	}
	c.Flash(cookie.FlashError, flightapi.Message(err))
	return redirect(c, LoginPath)
}

// redirect uses 303 after a form post and 302 otherwise.
func redirect(c internal.Context, url string) error {
	if c.Request().Method == http.MethodGet {
		return c.Redirect(http.StatusFound, url)
	}
	return c.Redirect(http.StatusSeeOther, url)
}

// back flashes the outcome of an action and returns to url. An expired
// session goes to login instead.
func back(c internal.Context, url string, err error, success string) error {
	switch {
	case err == nil:
		c.Flash(cookie.FlashSuccess, success)
	case errors.Is(err, flightapi.ErrSessionExpired):
		return sessionExpired(c, err)
	default:
		c.LogWarn("action failed", slog.String("path", c.Request().URL.Path), slog.Any("error", err))
		c.Flash(cookie.FlashError, message(err))
	}
	return redirect(c, url)
}

// message returns the text shown for err.
func message(err error) string {
	if he := internal.AsHTTPError(err); he != nil {
		return he.Message
	}
	return flightapi.Message(err)
}
