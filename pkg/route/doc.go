// Package route maps navigation locations to entries of an ordered route
// table and decides, per navigation, whether to redirect or render.
//
// The package has no I/O. A [Table] is built once at startup and is
// immutable afterwards; every call to [Table.Match] produces a fresh [Match]
// from the given location.
//
// # Matching
//
// A location such as "/Flight/AbC123" is split on "/" into a lowercased view,
// used for structural comparison, and a case-preserved view, used for
// parameter values. Matching proceeds in three steps:
//
//  1. Exact lookup of the whole lowercased location among the table keys.
//  2. An ordered scan over the entries in registration order. Only patterns
//     with the same number of segments are eligible; a ":name" segment
//     binds the case-preserved value at that position.
//  3. A synthesized "/resource/:id/verb" shape built from fixed positions.
//
// Regardless of the step that matched, the conventional slots "resource"
// (segment 1), "id" (segment 2, case preserved) and "verb" (segment 3) are
// populated from their fixed positions. Named placeholders are applied on top
// of them, so "/book/payment/42" against "/book/payment/:id" yields
// resource=book, id=42, verb=42.
//
// [Table.Resolve] substitutes the table's default entry when the matched key
// is not registered, which makes resolution total: there is no not-found
// result.
//
// # Navigation guard
//
// [Policy.Decide] implements the access rule:
//
//   - private entry, unauthenticated: redirect to the login location
//   - public entry, authenticated: redirect to the landing location
//   - otherwise: render the shell for the entry kind
//
// [Router.Navigate] runs matching and the guard against an [Env] and performs
// exactly one outcome: either Env.SetLocation, or one shell render followed by
// Env.Invoke with the extracted params and the entry title. The router does
// not wait for or inspect the invoked handler.
//
//	table, err := route.NewTable("/search",
//		route.Entry[Page]{Pattern: "/login", Title: "Login", Handler: login},
//		route.Entry[Page]{Pattern: "/search", Private: true, Title: "Buscar Vuelos", Handler: search},
//		route.Entry[Page]{Pattern: "/flight/:id", Private: true, Title: "Seleccionar Asientos", Handler: flight},
//	)
//	router, err := route.NewRouter(table, route.Policy{Login: "/login", Landing: "/search"})
//	res := router.Navigate(r.URL.Path, env)
package route
