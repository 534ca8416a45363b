// Package htmx reads htmx request headers and writes response headers.
//
// Full page navigations use hx-boost, so most handlers render whole
// documents. Fragment endpoints check IsPartial and answer with a part of
// the page:
//
//	if htmx.IsPartial(r) {
//		htmx.NewResponse(htmx.Trigger("seats-changed")).Apply(w)
//		return views.SeatSummary(data).Render(ctx, w)
//	}
//
// Redirect picks HX-Redirect for htmx requests and a 3xx otherwise.
package htmx
