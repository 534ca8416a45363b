// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.Live())
//	r.Get("/health/ready", health.Ready(health.Checks{
//		"api":   health.HTTPCheck(nil, cfg.API.BaseURL),
//		"redis": redis.Healthcheck(client),
//	}))
//
// Checks run concurrently under a shared timeout. Responses are plain text
// unless the client asks for JSON with ?format=json or an Accept header.
package health
