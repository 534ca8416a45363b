package pages

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/state"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/middlewares"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/route"
)

const msgFlightNotFound = "Vuelo no encontrado."

// loadFlight fetches a flight and its seat map concurrently.
func loadFlight(c internal.Context, id int) (*flightapi.Flight, []flightapi.Seat, error) {
	if id <= 0 {
		return nil, nil, internal.ErrNotFound(msgFlightNotFound)
	}

	var (
		flight *flightapi.Flight
		seats  []flightapi.Seat
	)
	g, ctx := errgroup.WithContext(c)
	api := c.API()
	g.Go(func() (err error) {
		flight, err = api.Flight(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		seats, err = api.FlightSeats(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return flight, seats, nil
}

func flightPage(c internal.Context, params route.Params, title string) error {
	id, err := params.Int(route.ParamID)
	if err != nil {
		return internal.ErrNotFound(msgFlightNotFound, internal.WithError(err))
	}
	flight, seats, err := loadFlight(c, id)
	if err != nil {
		return err
	}

	data := views.FlightData{
		Flight:  flight,
		Groups:  views.GroupSeats(seats),
		Summary: views.SummaryData{FlightID: flight.ID},
	}

	// Returning from the passengers form keeps the previous selection.
	if st, err := c.State(); err == nil {
		if b := st.Booking(); !b.Empty() && b.Flight.ID == flight.ID {
			data.Selected = make(map[int]bool, len(b.Seats))
			for _, s := range b.Seats {
				data.Selected[s.ID] = true
			}
			data.Summary.Count = len(b.Seats)
			data.Summary.Total = b.Total()
		}
	}

	return c.RenderPage(http.StatusOK, fmt.Sprintf("%s: %s", title, flight.Number), views.FlightPage(data))
}

func isSeatError(err error) bool {
	return errors.Is(err, state.ErrNoSeats) ||
		errors.Is(err, state.ErrTooManySeats) ||
		errors.Is(err, state.ErrSeatTaken) ||
		errors.Is(err, state.ErrUnknownSeat) ||
		errors.Is(err, state.ErrDuplicateSeat)
}

// seatMessage turns a seat selection error into the text shown to the user.
func seatMessage(err error) string {
	switch {
	case errors.Is(err, state.ErrTooManySeats):
		return fmt.Sprintf("Puedes seleccionar hasta %d asientos por reserva.", state.MaxSeats)
	case errors.Is(err, state.ErrSeatTaken):
		return "Uno de los asientos seleccionados ya no está disponible."
	case errors.Is(err, state.ErrNoSeats):
		return "Selecciona al menos un asiento."
	default:
		return "La selección de asientos no es válida."
	}
}

// Flights handles seat selection.
type Flights struct{}

func (h *Flights) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.RequireAuth(LoginPath))
		r.POST("/flight/{id}/summary", h.summary)
		r.POST("/flight/{id}/continue", h.proceed)
	})
}

// selection validates the posted seats against the current seat map.
func (h *Flights) selection(c internal.Context) (int, *state.Booking, error) {
	id := internal.Param[int](c, "id")
	ids, err := internal.FormInts(c, "seat")
	if err != nil {
		return id, nil, internal.ErrBadRequest("La selección de asientos no es válida.", internal.WithError(err))
	}
	flight, seats, err := loadFlight(c, id)
	if err != nil {
		return id, nil, err
	}
	b, err := state.NewBooking(*flight, seats, ids)
	return id, b, err
}

// summary renders the running total after each seat toggle.
func (h *Flights) summary(c internal.Context) error {
	id, b, err := h.selection(c)
	data := views.SummaryData{FlightID: id}
	switch {
	case err == nil:
		data.Count = len(b.Seats)
		data.Total = b.Total()
	case errors.Is(err, state.ErrNoSeats):
	case isSeatError(err):
		data.Error = seatMessage(err)
	default:
		return err
	}
	return c.Render(http.StatusOK, views.SeatSummary(data))
}

// proceed stores the booking flow and moves on to the passengers form.
func (h *Flights) proceed(c internal.Context) error {
	id, b, err := h.selection(c)
	switch {
	case isSeatError(err):
		c.Flash(cookie.FlashError, seatMessage(err))
		return redirect(c, fmt.Sprintf("/flight/%d", id))
	case err != nil:
		return back(c, fmt.Sprintf("/flight/%d", id), err, "")
	}

	st, err := c.State()
	if err != nil {
		return err
	}
	st.SetBooking(b)
	return c.Redirect(http.StatusSeeOther, "/book/passengers")
}
