// Package redis opens go-redis clients for the session store and the API
// response cache.
//
// Open accepts redis:// and rediss:// URLs and retries the initial ping with
// exponential backoff, so the web process can start before Redis is ready:
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//		redis.WithRetry(10, time.Second),
//	)
//	if err != nil {
//		return err
//	}
//
//	app := flightdesk.New(
//		flightdesk.WithShutdownHook(redis.Shutdown(client)),
//	)
//
// Healthcheck plugs into the readiness probe of package health.
package redis
