package flightapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateReservation books the given passengers, one seat each.
func (c *Client) CreateReservation(ctx context.Context, passengers []PassengerInput) (*Reservation, error) {
	var r Reservation
	body := reservationCreate{Passengers: passengers}
	if err := c.send(ctx, http.MethodPost, "reservations.create", "/reservas/", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MyReservations lists the user's reservations. An empty status lists all.
func (c *Client) MyReservations(ctx context.Context, status string) ([]ReservationDetail, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"estado": {status}}
	}

	var out []ReservationDetail
	if err := c.get(ctx, "reservations.mine", "/reservas/me", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reservation returns a reservation with its passengers and ticket.
func (c *Client) Reservation(ctx context.Context, id int) (*ReservationDetail, error) {
	var r ReservationDetail
	if err := c.get(ctx, "reservations.get", "/reservas/"+strconv.Itoa(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CancelReservation cancels a pending reservation.
func (c *Client) CancelReservation(ctx context.Context, id int) (*Reservation, error) {
	var r Reservation
	path := "/reservas/" + strconv.Itoa(id) + "/cancel"
	if err := c.send(ctx, http.MethodPatch, "reservations.cancel", path, struct{}{}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
