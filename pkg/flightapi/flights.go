package flightapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// SearchFlights finds flights for a route and date. Queries with an airline,
// seat category or ordering use the advanced search endpoint.
func (c *Client) SearchFlights(ctx context.Context, q SearchQuery) ([]Flight, error) {
	params := url.Values{}
	params.Set("origen", q.Origin)
	params.Set("destino", q.Destination)
	params.Set("fecha", q.Date)

	endpoint, path := "flights.search", "/flights/search"
	if q.Advanced() {
		endpoint, path = "flights.search_advanced", "/flights/search/advanced"
		setIf(params, "aerolinea", q.Airline)
		setIf(params, "categoria_asiento", q.Category)
		setIf(params, "ordenar_por", q.OrderBy)
	}

	var flights []Flight
	if err := c.get(ctx, endpoint, path, params, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// Flight returns a flight by id. Results are cached when a Cache is
// configured, and concurrent lookups of the same id share one request.
func (c *Client) Flight(ctx context.Context, id int) (*Flight, error) {
	key := "flight:" + strconv.Itoa(id)

	if c.cache != nil {
		if data, err := c.cache.Get(ctx, key); err == nil {
			var f Flight
			if json.Unmarshal(data, &f) == nil {
				return &f, nil
			}
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		var f Flight
		if err := c.get(ctx, "flights.get", "/flights/"+strconv.Itoa(id), nil, &f); err != nil {
			return nil, err
		}
		if c.cache != nil {
			if data, err := json.Marshal(f); err == nil {
				_ = c.cache.Set(ctx, key, data, c.cacheTTL)
			}
		}
		return &f, nil
	})
	if err != nil {
		return nil, err
	}

	f := *v.(*Flight)
	return &f, nil
}

// FlightSeats returns the seat map of a flight. Seat availability changes
// with every booking, so it is never cached.
func (c *Client) FlightSeats(ctx context.Context, id int) ([]Seat, error) {
	var seats []Seat
	if err := c.get(ctx, "flights.seats", "/flights/"+strconv.Itoa(id)+"/seats", nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
