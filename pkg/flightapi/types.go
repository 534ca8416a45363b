package flightapi

import (
	"strings"
	"time"
)

// Reservation states.
const (
	ReservationPending   = "Pendiente"
	ReservationConfirmed = "Confirmada"
	ReservationCancelled = "Cancelada"
)

// Seat states.
const (
	SeatAvailable = "Disponible"
	SeatReserved  = "Reservado"
	SeatOccupied  = "Ocupado"
)

// Seat categories.
const (
	CategoryEconomy  = "Economica"
	CategoryBusiness = "Business"
	CategoryFirst    = "PrimeraClase"
)

// Advanced search orderings.
const (
	OrderBySchedule = "horario"
	OrderByPrice    = "precio"
)

// TokenResponse is returned by login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the authenticated account.
type User struct {
	Email     string `json:"email"`
	FullName  string `json:"nombre_completo"`
	CreatedAt string `json:"fecha_creacion,omitempty"`
	ID        int    `json:"id"`
}

// UserStats are the aggregates shown on the profile page.
type UserStats struct {
	TotalSpent        float64 `json:"monto_total_gastado"`
	TotalReservations int     `json:"total_reservas"`
	TotalTickets      int     `json:"total_billetes"`
	TotalCards        int     `json:"total_tarjetas"`
}

// UserProfile is a User with statistics.
type UserProfile struct {
	User
	Stats UserStats `json:"estadisticas"`
}

// Airport is an origin or destination.
type Airport struct {
	IATA    string `json:"codigo_iata"`
	Name    string `json:"nombre"`
	City    string `json:"ciudad"`
	Country string `json:"pais"`
	ID      int    `json:"id"`
}

// Airline operates a flight.
type Airline struct {
	Name string `json:"nombre"`
	IATA string `json:"codigo_iata"`
	ID   int    `json:"id"`
}

// Flight is a scheduled flight.
type Flight struct {
	Airline     Airline `json:"aerolinea"`
	Origin      Airport `json:"origen"`
	Destination Airport `json:"destino"`
	Number      string  `json:"numero_vuelo"`
	DepartsAt   string  `json:"hora_salida"`
	ArrivesAt   string  `json:"hora_llegada"`
	Status      string  `json:"estado"`
	BaseFare    float64 `json:"tarifa_base"`
	ID          int     `json:"id"`
}

// Departure parses DepartsAt. The zero time is returned for unparsable values.
func (f Flight) Departure() time.Time {
	return ParseTime(f.DepartsAt)
}

// Arrival parses ArrivesAt. The zero time is returned for unparsable values.
func (f Flight) Arrival() time.Time {
	return ParseTime(f.ArrivesAt)
}

// Seat is a seat on a flight.
type Seat struct {
	Number    string  `json:"numero_asiento"`
	Category  string  `json:"categoria"`
	Status    string  `json:"estado"`
	Surcharge float64 `json:"precio_adicional"`
	ID        int     `json:"id"`
}

// Available reports whether the seat can be selected.
func (s Seat) Available() bool {
	return s.Status == SeatAvailable
}

// PassengerInput is a passenger sent when creating a reservation.
type PassengerInput struct {
	FullName string `json:"nombre_completo"`
	Document string `json:"documento_identidad"`
	SeatID   int    `json:"id_asiento"`
}

// Passenger is a stored passenger.
type Passenger struct {
	PassengerInput
	ID            int `json:"id"`
	ReservationID int `json:"id_reserva"`
}

// Reservation is a booking summary.
type Reservation struct {
	CreatedAt string  `json:"fecha_reserva"`
	Status    string  `json:"estado"`
	Total     float64 `json:"monto_total"`
	ID        int     `json:"id"`
	UserID    int     `json:"id_usuario"`
}

// Pending reports whether the reservation awaits payment.
func (r Reservation) Pending() bool {
	return r.Status == ReservationPending
}

// ReservationDetail is a reservation with passengers and its ticket, if any.
type ReservationDetail struct {
	Ticket *Ticket `json:"billete"`
	Reservation
	Passengers []Passenger `json:"pasajeros"`
}

// Card is a stored payment card with the number masked.
type Card struct {
	LastFour  string `json:"ultimos_4_digitos"`
	Expiry    string `json:"fecha_expiracion"`
	Holder    string `json:"nombre_titular"`
	ID        int    `json:"id"`
	IsDefault bool   `json:"es_predeterminada"`
}

// CardInput is a card to store.
type CardInput struct {
	Number string `json:"numero_tarjeta"`
	Expiry string `json:"fecha_expiracion"`
	Holder string `json:"nombre_titular"`
}

// Ticket is a purchased ticket.
type Ticket struct {
	Code          string `json:"codigo_confirmacion"`
	PurchasedAt   string `json:"fecha_compra"`
	ID            int    `json:"id"`
	ReservationID int    `json:"id_reserva"`
	CardID        int    `json:"id_tarjeta_credito"`
}

// Confirmation is the purchase receipt.
type Confirmation struct {
	Code        string  `json:"codigo_confirmacion"`
	PurchasedAt string  `json:"fecha_compra"`
	Message     string  `json:"mensaje"`
	Total       float64 `json:"monto_total"`
	ID          int     `json:"id"`
}

// SearchQuery is a flight search. Airline, Category and OrderBy select the
// advanced search endpoint when any of them is set.
type SearchQuery struct {
	Origin      string
	Destination string
	Date        string
	Airline     string
	Category    string
	OrderBy     string
}

// Advanced reports whether the query needs the advanced search endpoint.
func (q SearchQuery) Advanced() bool {
	return q.Airline != "" || q.Category != "" || q.OrderBy != ""
}

// ProfileUpdate holds editable profile fields.
type ProfileUpdate struct {
	FullName string `json:"nombre_completo"`
	Email    string `json:"email"`
}

type passwordChange struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
}

type registration struct {
	FullName string `json:"nombre_completo"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type reservationCreate struct {
	Passengers []PassengerInput `json:"pasajeros"`
}

type purchase struct {
	ReservationID int `json:"id_reserva"`
	CardID        int `json:"id_tarjeta"`
}

// MessageResponse is returned by endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses the timestamp formats the API emits. The zero time is
// returned for unparsable values.
func ParseTime(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
