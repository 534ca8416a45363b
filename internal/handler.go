package internal

import (
	"github.com/dmitrymomot/flightdesk/pkg/route"
)

// Handler declares routes on a router.
//
//	func (h *Payment) Routes(r internal.Router) {
//		r.POST("/book/payment/{id}/cards", h.addCard)
//		r.POST("/book/payment/{id}/purchase", h.purchase)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A returned error goes to the ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error

// PageFunc renders the content of a routed page. The navigation dispatcher
// calls it after the guard decided to render, with the params bound by the
// matcher and the entry title.
type PageFunc func(c Context, params route.Params, title string) error
