package state

import (
	"errors"

	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
)

// MaxSeats bounds one booking. The flow is kept in a cookie.
const MaxSeats = 9

// Errors.
var (
	ErrNoSeats       = errors.New("state: no seats selected")
	ErrTooManySeats  = errors.New("state: too many seats selected")
	ErrSeatTaken     = errors.New("state: seat is not available")
	ErrUnknownSeat   = errors.New("state: seat does not belong to the flight")
	ErrDuplicateSeat = errors.New("state: seat selected twice")
)

// FlightSummary is the part of a flight the booking flow needs.
type FlightSummary struct {
	Number      string  `json:"n"`
	Airline     string  `json:"a"`
	Origin      string  `json:"o"`
	Destination string  `json:"d"`
	DepartsAt   string  `json:"t"`
	BaseFare    float64 `json:"f"`
	ID          int     `json:"id"`
}

// SeatChoice is a selected seat.
type SeatChoice struct {
	Number    string  `json:"n"`
	Category  string  `json:"c"`
	Surcharge float64 `json:"s"`
	ID        int     `json:"id"`
}

// Booking is a flight with the seats chosen for it.
type Booking struct {
	Seats  []SeatChoice  `json:"s"`
	Flight FlightSummary `json:"f"`
}

// NewBooking validates seatIDs against the seat map of f and builds a
// booking in the order the ids were given.
func NewBooking(f flightapi.Flight, seats []flightapi.Seat, seatIDs []int) (*Booking, error) {
	if len(seatIDs) == 0 {
		return nil, ErrNoSeats
	}
	if len(seatIDs) > MaxSeats {
		return nil, ErrTooManySeats
	}

	byID := make(map[int]flightapi.Seat, len(seats))
	for _, s := range seats {
		byID[s.ID] = s
	}

	b := &Booking{
		Flight: FlightSummary{
			ID:          f.ID,
			Number:      f.Number,
			Airline:     f.Airline.Name,
			Origin:      f.Origin.IATA,
			Destination: f.Destination.IATA,
			DepartsAt:   f.DepartsAt,
			BaseFare:    f.BaseFare,
		},
		Seats: make([]SeatChoice, 0, len(seatIDs)),
	}
	seen := make(map[int]bool, len(seatIDs))
	for _, id := range seatIDs {
		s, ok := byID[id]
		switch {
		case !ok:
			return nil, ErrUnknownSeat
		case seen[id]:
			return nil, ErrDuplicateSeat
		case !s.Available():
			return nil, ErrSeatTaken
		}
		seen[id] = true
		b.Seats = append(b.Seats, SeatChoice{ID: s.ID, Number: s.Number, Category: s.Category, Surcharge: s.Surcharge})
	}
	return b, nil
}

// Total is the sum over seats of the base fare plus the seat surcharge.
func (b *Booking) Total() float64 {
	if b == nil {
		return 0
	}
	var total float64
	for _, s := range b.Seats {
		total += b.Flight.BaseFare + s.Surcharge
	}
	return total
}

// SeatIDs returns the ids of the selected seats.
func (b *Booking) SeatIDs() []int {
	if b == nil {
		return nil
	}
	ids := make([]int, len(b.Seats))
	for i, s := range b.Seats {
		ids[i] = s.ID
	}
	return ids
}

// Empty reports whether no seats are selected.
func (b *Booking) Empty() bool {
	return b == nil || len(b.Seats) == 0
}
