package pages

import (
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/middlewares"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/route"
	"github.com/dmitrymomot/flightdesk/pkg/sanitizer"
)

const (
	passengersTitle = "Datos de Pasajeros"
	bookingsPath    = "/bookings"

	msgIncompletePassengers = "Por favor, completa los datos de todos los pasajeros."
	msgNoBooking            = "Selecciona un vuelo y tus asientos primero."
	msgNoCard               = "Por favor, selecciona o añade una tarjeta de crédito."
	msgCardAdded            = "Tarjeta añadida exitosamente."
	msgCancelled            = "Reserva cancelada."
	msgNotPending           = "La reserva ya no está pendiente de pago."
	msgMissingCard          = "Por favor, completa los datos de la tarjeta."
)

func paymentPath(id int) string {
	return fmt.Sprintf("/book/payment/%d", id)
}

// passengersPage asks for one passenger per seat of the booking flow.
func passengersPage(c internal.Context, _ route.Params, title string) error {
	st, err := c.State()
	if err != nil {
		return err
	}
	b := st.Booking()
	if b.Empty() {
		c.Flash(cookie.FlashInfo, msgNoBooking)
		return redirect(c, LandingPath)
	}
	return c.RenderPage(http.StatusOK, title, views.PassengersPage(views.NewPassengersData(b)))
}

// paymentPage shows a pending reservation with the saved cards.
func paymentPage(c internal.Context, params route.Params, title string) error {
	id, err := params.Int(route.ParamID)
	if err != nil {
		return internal.ErrNotFound("Reserva no encontrada.", internal.WithError(err))
	}

	var data views.PaymentData
	g, ctx := errgroup.WithContext(c)
	api := c.API()
	g.Go(func() (err error) {
		data.Reservation, err = api.Reservation(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		data.Cards, err = api.MyCards(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if !data.Reservation.Pending() {
		c.Flash(cookie.FlashInfo, msgNotPending)
		return redirect(c, bookingsPath)
	}
	return c.RenderPage(http.StatusOK, title, views.PaymentPage(data))
}

// confirmationPage shows a bought ticket. The legacy verb location
// "#/confirmation/<code>" carries the code in the id slot.
func confirmationPage(c internal.Context, params route.Params, title string) error {
	code := params.First("code", route.ParamID)
	if code == "" {
		return internal.ErrNotFound("Billete no encontrado.")
	}
	conf, err := c.API().Confirmation(c, code)
	if err != nil {
		return err
	}
	return c.RenderPage(http.StatusOK, title, views.ConfirmationPage(conf))
}

func bookingsPage(c internal.Context, _ route.Params, title string) error {
	var data views.BookingsData
	g, ctx := errgroup.WithContext(c)
	api := c.API()
	g.Go(func() (err error) {
		data.Pending, err = api.MyReservations(ctx, flightapi.ReservationPending)
		return err
	})
	g.Go(func() (err error) {
		data.Tickets, err = api.MyTickets(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.RenderPage(http.StatusOK, title, views.BookingsPage(data))
}

// Booking handles the passengers, payment and cancellation actions.
type Booking struct{}

func (h *Booking) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.RequireAuth(LoginPath))
		r.POST("/book/passengers", h.passengers)
		r.POST("/book/payment/{id}/cards", h.addCard)
		r.POST("/book/payment/{id}/purchase", h.purchase)
		r.POST("/bookings/{id}/cancel", h.cancel)
	})
}

// passengers creates the reservation for the booking flow and moves on to
// payment. Missing passenger data re-renders the form.
func (h *Booking) passengers(c internal.Context) error {
	st, err := c.State()
	if err != nil {
		return err
	}
	b := st.Booking()
	if b.Empty() {
		c.Flash(cookie.FlashInfo, msgNoBooking)
		return redirect(c, LandingPath)
	}

	data := views.NewPassengersData(b)
	names := c.FormValues("nombre_completo")
	docs := c.FormValues("documento_identidad")
	input := make([]flightapi.PassengerInput, len(b.Seats))
	complete := len(names) == len(b.Seats) && len(docs) == len(b.Seats)
	for i, seat := range b.Seats {
		var name, doc string
		if i < len(names) {
			name = sanitizer.Text(names[i])
		}
		if i < len(docs) {
			doc = sanitizer.Upper(docs[i])
		}
		data.Rows[i].FullName = name
		data.Rows[i].Document = doc
		if name == "" || doc == "" {
			complete = false
		}
		input[i] = flightapi.PassengerInput{FullName: name, Document: doc, SeatID: seat.ID}
	}

	if !complete {
		data.Error = msgIncompletePassengers
		return c.RenderPage(http.StatusUnprocessableEntity, passengersTitle, views.PassengersPage(data))
	}

	res, err := c.API().CreateReservation(c, input)
	if err != nil {
		if internal.ToHTTPError(err).Code == http.StatusUnprocessableEntity {
			data.Error = message(err)
			return c.RenderPage(http.StatusUnprocessableEntity, passengersTitle, views.PassengersPage(data))
		}
		return err
	}

	st.ClearBooking()
	c.LogInfo("reservation created", "reservation_id", res.ID, "seats", len(input))
	return c.Redirect(http.StatusSeeOther, paymentPath(res.ID))
}

func (h *Booking) addCard(c internal.Context) error {
	id := internal.Param[int](c, "id")
	in := cardInput(c)
	if in.Number == "" || in.Expiry == "" || in.Holder == "" {
		c.Flash(cookie.FlashError, msgMissingCard)
		return redirect(c, paymentPath(id))
	}
	_, err := c.API().AddCard(c, in)
	return back(c, paymentPath(id), err, msgCardAdded)
}

// purchase pays a pending reservation with the selected card and shows the
// confirmation.
func (h *Booking) purchase(c internal.Context) error {
	id := internal.Param[int](c, "id")
	cardID := internal.Form[int](c, "tarjeta_id")
	if cardID <= 0 {
		c.Flash(cookie.FlashError, msgNoCard)
		return redirect(c, paymentPath(id))
	}

	ticket, err := c.API().PurchaseTicket(c, id, cardID)
	if err != nil {
		return back(c, paymentPath(id), err, "")
	}
	c.LogInfo("ticket purchased", "reservation_id", id, "ticket_id", ticket.ID)
	return c.Redirect(http.StatusSeeOther, "/confirmation/"+ticket.Code)
}

func (h *Booking) cancel(c internal.Context) error {
	id := internal.Param[int](c, "id")
	_, err := c.API().CancelReservation(c, id)
	return back(c, bookingsPath, err, msgCancelled)
}

// cardInput reads the new card form shared by payment and profile.
func cardInput(c internal.Context) flightapi.CardInput {
	return flightapi.CardInput{
		Number: sanitizer.Digits(c.Form("numero_tarjeta")),
		Expiry: sanitizer.Text(c.Form("fecha_expiracion")),
		Holder: sanitizer.Upper(c.Form("nombre_titular")),
	}
}
