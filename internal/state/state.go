// Package state holds the per-visitor client state: the access token with
// the user it belongs to, and the in-progress booking flow.
//
// The auth part lives in the server-side session and survives browser
// restarts. The booking part lives in a browser-session cookie and dies
// with the browser session.
package state

import (
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
)

// Auth is the persistent part of the state.
type Auth struct {
	User     *flightapi.User `json:"user,omitempty"`
	Token    string          `json:"token,omitempty"`
	Verified bool            `json:"verified,omitempty"`
}

// State is the state of one visitor for the duration of a request.
// It is not safe for concurrent use.
type State struct {
	booking      *Booking
	auth         Auth
	authDirty    bool
	bookingDirty bool
}

// New restores a State from its persisted parts. booking may be nil.
func New(auth Auth, booking *Booking) *State {
	return &State{auth: auth, booking: booking}
}

// IsAuthenticated reports whether a token is present. The token is not
// validated here.
func (s *State) IsAuthenticated() bool {
	return s.auth.Token != ""
}

// Token returns the access token.
func (s *State) Token() string {
	return s.auth.Token
}

// User returns the cached user, or nil.
func (s *State) User() *flightapi.User {
	return s.auth.User
}

// Verified reports whether the token was confirmed by the API during this
// session.
func (s *State) Verified() bool {
	return s.auth.Verified
}

// SetToken stores a new token. The cached user is dropped since it belongs
// to the previous token.
func (s *State) SetToken(token string) {
	s.auth = Auth{Token: token}
	s.authDirty = true
}

// SetUser caches the user and marks the token verified.
func (s *State) SetUser(u *flightapi.User) {
	if u == nil {
		return
	}
	cp := *u
	s.auth.User = &cp
	s.auth.Verified = true
	s.authDirty = true
}

// ClearToken drops the token, the user and the verification flag.
func (s *State) ClearToken() {
	if s.auth == (Auth{}) {
		return
	}
	s.auth = Auth{}
	s.authDirty = true
}

// Auth returns a copy of the persistent part.
func (s *State) Auth() Auth {
	return s.auth
}

// Booking returns the booking flow, or nil when none is in progress.
func (s *State) Booking() *Booking {
	return s.booking
}

// SetBooking replaces the booking flow.
func (s *State) SetBooking(b *Booking) {
	s.booking = b
	s.bookingDirty = true
}

// ClearBooking ends the booking flow.
func (s *State) ClearBooking() {
	if s.booking == nil {
		return
	}
	s.booking = nil
	s.bookingDirty = true
}

// AuthDirty reports whether the auth part changed since New.
func (s *State) AuthDirty() bool {
	return s.authDirty
}

// BookingDirty reports whether the booking flow changed since New.
func (s *State) BookingDirty() bool {
	return s.bookingDirty
}

// Dirty reports whether anything changed.
func (s *State) Dirty() bool {
	return s.authDirty || s.bookingDirty
}

// MarkClean resets the dirty flags after both parts were saved.
func (s *State) MarkClean() {
	s.authDirty = false
	s.bookingDirty = false
}
