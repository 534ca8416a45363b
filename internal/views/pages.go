package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/flightdesk/internal/state"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
)

// LoginData fills the login and registration forms.
type LoginData struct {
	Email           string
	LoginError      string
	RegisterName    string
	RegisterEmail   string
	RegisterError   string
	RegisterSuccess string
}

func LoginPage(d LoginData) templ.Component {
	return component("login", d)
}

// SearchData is the search form and, once searched, its results.
type SearchData struct {
	Query    flightapi.SearchQuery
	Error    string
	Flights  []flightapi.Flight
	Searched bool
}

// Orderings lists the advanced search orderings for the select box.
func (SearchData) Orderings() []string {
	return []string{flightapi.OrderBySchedule, flightapi.OrderByPrice}
}

// Categories lists the seat categories for the select box.
func (SearchData) Categories() []string {
	return seatCategories
}

func SearchPage(d SearchData) templ.Component {
	return component("search", d)
}

var seatCategories = []string{flightapi.CategoryEconomy, flightapi.CategoryBusiness, flightapi.CategoryFirst}

// SeatGroup is the seats of one category.
type SeatGroup struct {
	Category  string
	Seats     []flightapi.Seat
	Surcharge float64
}

// GroupSeats splits seats by category in cabin order. Empty categories
// are left out; unknown categories follow the known ones.
func GroupSeats(seats []flightapi.Seat) []SeatGroup {
	var groups []SeatGroup
	index := make(map[string]int)
	add := func(s flightapi.Seat) {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SeatGroup{Category: s.Category, Surcharge: s.Surcharge})
		}
		groups[i].Seats = append(groups[i].Seats, s)
	}

	known := make(map[string]bool, len(seatCategories))
	for _, c := range seatCategories {
		known[c] = true
		for _, s := range seats {
			if s.Category == c {
				add(s)
			}
		}
	}
	for _, s := range seats {
		if !known[s.Category] {
			add(s)
		}
	}
	return groups
}

// SummaryData is the running total of a seat selection.
type SummaryData struct {
	Error    string
	Total    float64
	FlightID int
	Count    int
}

// SeatSummary is the selection summary fragment, swapped by htmx on every
// seat toggle.
func SeatSummary(d SummaryData) templ.Component {
	return component("seat_summary", d)
}

// FlightData is the seat map of a flight.
type FlightData struct {
	Flight   *flightapi.Flight
	Selected map[int]bool
	Groups   []SeatGroup
	Summary  SummaryData
}

func FlightPage(d FlightData) templ.Component {
	return component("flight", d)
}

// PassengerRow is the form of one passenger.
type PassengerRow struct {
	FullName string
	Document string
	Seat     state.SeatChoice
	Index    int
}

// PassengersData is the passengers form of the booking flow.
type PassengersData struct {
	Booking *state.Booking
	Error   string
	Rows    []PassengerRow
}

// NewPassengersData builds one empty row per selected seat.
func NewPassengersData(b *state.Booking) PassengersData {
	d := PassengersData{Booking: b}
	if b == nil {
		return d
	}
	for i, s := range b.Seats {
		d.Rows = append(d.Rows, PassengerRow{Index: i, Seat: s})
	}
	return d
}

func PassengersPage(d PassengersData) templ.Component {
	return component("passengers", d)
}

// PaymentData is the checkout of a pending reservation.
type PaymentData struct {
	Reservation *flightapi.ReservationDetail
	Error       string
	Cards       []flightapi.Card
}

func PaymentPage(d PaymentData) templ.Component {
	return component("payment", d)
}

func ConfirmationPage(c *flightapi.Confirmation) templ.Component {
	return component("confirmation", c)
}

// BookingsData lists reservations awaiting payment and bought tickets.
type BookingsData struct {
	Pending []flightapi.ReservationDetail
	Tickets []flightapi.Ticket
}

func BookingsPage(d BookingsData) templ.Component {
	return component("bookings", d)
}

// ProfileData is the account page.
type ProfileData struct {
	Profile *flightapi.UserProfile
	Cards   []flightapi.Card
}

func ProfilePage(d ProfileData) templ.Component {
	return component("profile", d)
}

// ErrorData is shown in place of a page that failed.
type ErrorData struct {
	Message   string
	RequestID string
}

// ErrorContent is the inline error region.
func ErrorContent(d ErrorData) templ.Component {
	return component("error", d)
}
