// Package flightapi is a typed client for the flight booking REST API.
//
// Every method maps to one endpoint and returns decoded values or an error
// wrapping one of the package sentinels. The error text is a user-facing
// message taken from the API's "detail" field when present:
//
//	flights, err := client.WithToken(token).SearchFlights(ctx, flightapi.SearchQuery{
//		Origin: "MAD", Destination: "BCN", Date: "2025-06-01",
//	})
//	switch {
//	case errors.Is(err, flightapi.ErrSessionExpired):
//		// drop the token, go to login
//	case err != nil:
//		show(flightapi.Message(err))
//	}
//
// Login uses the OAuth2 password grant form; a 401 there yields
// ErrInvalidCredentials, while a 401 anywhere else yields ErrSessionExpired.
// Validation failures (422) are flattened into
// "Error de validación: field: msg, ...".
//
// All calls go through a circuit breaker. GET requests are retried with
// exponential backoff on transport errors and 5xx responses. Flight details
// can be cached with a [MemoryCache] or [RedisCache].
package flightapi
