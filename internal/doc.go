// Package internal implements the application core behind the flightdesk
// facade. Import "github.com/dmitrymomot/flightdesk" instead.
//
// # Navigation
//
// Every GET not claimed by another route is a navigation. The path is
// handed to a route.Router, which matches it against the page table and
// applies the guard:
//
//   - a redirect decision answers 302 (or HX-Redirect for htmx) and the
//     browser navigates again with a new request;
//   - a render decision picks the public or private shell and invokes the
//     page's PageFunc, which renders its content with Context.RenderPage.
//
// Before the guard runs, a token that was never confirmed in this session
// is checked against the API once, or dropped when its JWT has expired.
//
// # Visitor state
//
// Context.State returns the token, user and booking flow of the visitor.
// The auth part is kept in the server-side session, the booking flow in an
// encrypted cookie that lasts for the browser session. Both are saved by
// a ResponseWriter hook right before the header is sent, so handlers only
// mutate the state and never save it.
//
// # Actions
//
// Form posts are regular routes declared by Handlers:
//
//	func (h *Bookings) Routes(r internal.Router) {
//		r.POST("/bookings/{id}/cancel", h.cancel, middlewares.RequireAuth("/login"))
//	}
//
// They mutate state through the API and redirect with 303.
package internal
