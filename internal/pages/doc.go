// Package pages wires the flight booking screens into the navigation table.
//
// Every screen is a PageFunc registered in Table under its legacy pattern
// ("/flight/:id", "/book/payment/:id", ...). Pages fetch what they need
// from the flight API, fanning out with errgroup when a screen needs more
// than one resource, and render through internal/views. A page that fails
// renders an inline error in place of its content, except for an expired
// API session, which drops the token and sends the visitor to login.
//
// Form actions live on the Handler types returned by Handlers. They follow
// post/redirect/get: the outcome is stored as a flash message and the
// visitor is redirected back to the screen the form belongs to. Login,
// registration and the passengers form re-render in place instead, so the
// typed values survive a rejected submission.
//
//	app := internal.New(
//		internal.WithPages(pages.Router(), views.Layout),
//		internal.WithHandlers(pages.Handlers()...),
//		internal.WithErrorHandler(pages.HandleError),
//	)
package pages
