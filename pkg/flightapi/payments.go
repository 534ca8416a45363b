package flightapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// MyCards lists the user's stored cards.
func (c *Client) MyCards(ctx context.Context) ([]Card, error) {
	var cards []Card
	if err := c.get(ctx, "cards.mine", "/tarjetas/me", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// AddCard stores a card.
func (c *Client) AddCard(ctx context.Context, in CardInput) (*Card, error) {
	var card Card
	if err := c.send(ctx, http.MethodPost, "cards.add", "/tarjetas/", in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteCard removes a stored card.
func (c *Client) DeleteCard(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, "cards.delete", "/tarjetas/"+strconv.Itoa(id), nil, nil)
}

// PurchaseTicket pays a pending reservation with a stored card.
func (c *Client) PurchaseTicket(ctx context.Context, reservationID, cardID int) (*Ticket, error) {
	var t Ticket
	body := purchase{ReservationID: reservationID, CardID: cardID}
	if err := c.send(ctx, http.MethodPost, "tickets.purchase", "/billetes/purchase", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// MyTickets lists the user's purchased tickets.
func (c *Client) MyTickets(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := c.get(ctx, "tickets.mine", "/billetes/me", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Confirmation returns the receipt for a confirmation code.
func (c *Client) Confirmation(ctx context.Context, code string) (*Confirmation, error) {
	var out Confirmation
	path := "/billetes/confirmation/" + url.PathEscape(code)
	if err := c.get(ctx, "tickets.confirmation", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
