package pages

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/route"
	"github.com/dmitrymomot/flightdesk/pkg/sanitizer"
)

// searchQuery reads the search form from the query string.
func searchQuery(c internal.Context) flightapi.SearchQuery {
	return flightapi.SearchQuery{
		Origin:      sanitizer.Upper(sanitizer.Alnum(c.Query("origen"))),
		Destination: sanitizer.Upper(sanitizer.Alnum(c.Query("destino"))),
		Date:        sanitizer.Text(c.Query("fecha")),
		Airline:     sanitizer.Text(c.Query("aerolinea")),
		Category:    sanitizer.Alnum(c.Query("categoria_asiento")),
		OrderBy:     sanitizer.Alnum(c.Query("ordenar_por")),
	}
}

// searchPage shows the form and, once origin, destination and date are
// present, the matching flights. Search failures stay inside the results
// region.
func searchPage(c internal.Context, _ route.Params, title string) error {
	data := views.SearchData{Query: searchQuery(c)}
	q := data.Query

	if q.Origin != "" && q.Destination != "" && q.Date != "" {
		data.Searched = true
		flights, err := c.API().SearchFlights(c, q)
		switch {
		case errors.Is(err, flightapi.ErrSessionExpired):
			return err
		case err != nil:
			c.LogWarn("flight search failed", "error", err)
			data.Error = message(err)
		default:
			data.Flights = flights
		}
	}

	return c.RenderPage(http.StatusOK, title, views.SearchPage(data))
}
