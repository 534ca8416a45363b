// Package flightdesk serves the FlightManager booking site: flight search,
// seat selection, passenger details, payment and account pages rendered on
// the server in front of the flight booking REST API.
//
// # Quick Start
//
// Create an application with flightdesk.New, point it at the API and call
// Run to start the HTTP server:
//
//	cookies, err := cookie.New(secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := flightdesk.New(
//	    flightdesk.WithLogger(logger),
//	    flightdesk.WithAPI(flightapi.New("http://localhost:8000")),
//	    flightdesk.WithCookies(cookies),
//	    flightdesk.WithSession(session.NewMemoryStore()),
//	    flightdesk.WithBookingSite(),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Navigation
//
// Every GET not claimed by a handler is a navigation. The location is
// matched against the page table, the guard decides whether the visitor
// may see it, and the page renders inside the public or the private shell.
// Locations of the legacy single-page client ("#/flight/7") are accepted
// by [Pages.Plan] and redirected to their path form by the layout.
//
//	res := flightdesk.BookingPages().Plan("#/book/payment/55", true)
//	// res.Entry.Pattern == "/book/payment/:id"
//	// res.Match.Params["id"] == "55"
//	// res.Decision.Outcome == route.Render
//
// # Handlers
//
// Form actions are plain handlers:
//
//	type Newsletter struct{}
//
//	func (h *Newsletter) Routes(r flightdesk.Router) {
//	    r.POST("/newsletter", h.subscribe)
//	}
//
//	func (h *Newsletter) subscribe(c flightdesk.Context) error {
//	    c.Flash(cookie.FlashSuccess, "¡Gracias!")
//	    return c.Redirect(http.StatusSeeOther, "/search")
//	}
//
// # Shutdown
//
// The server handles SIGINT/SIGTERM for graceful shutdown.
// Register cleanup functions with ShutdownHook:
//
//	app.Run(":8080", flightdesk.ShutdownHook(redis.Shutdown(client)))
package flightdesk
