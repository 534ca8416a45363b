package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flightdesk"
	"github.com/dmitrymomot/flightdesk/middlewares"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/health"
	"github.com/dmitrymomot/flightdesk/pkg/logger"
	"github.com/dmitrymomot/flightdesk/pkg/redis"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

const (
	sessionKeyPrefix = "flightdesk:session:"
	cacheKeyPrefix   = "flightdesk:api:"
)

func serveCmd(configPath *string) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the booking site",
		Long: `Serve the booking site in front of the flight API.

Configuration is read from --config and FLIGHTDESK_* environment variables.
The server stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath, getenv)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (overrides config)")

	return cmd
}

func serve(ctx context.Context, cfg Config) error {
	log, flush := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		SentryDSN:   cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     version,
	}, middlewares.RequestIDExtractor(), middlewares.RoutePatternExtractor())
	defer flush()

	cookies, err := cookie.New(cfg.Session.CookieSecret, cookie.WithSecure(cfg.Session.Secure))
	if err != nil {
		return fmt.Errorf("cookies: %w", err)
	}

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	apiOpts := []flightapi.Option{
		flightapi.WithLogger(log.With(slog.String("component", "flightapi"))),
		flightapi.WithTimeout(cfg.API.Timeout),
		flightapi.WithRetries(cfg.API.Retries),
	}
	if cfg.Metrics.Enabled {
		apiOpts = append(apiOpts, flightapi.WithMetrics(reg))
	}

	checks := health.Checks{
		"api": health.HTTPCheck(nil, strings.TrimRight(cfg.API.BaseURL, "/")+"/"),
	}
	var (
		store    session.Store = session.NewMemoryStore()
		runOpts  []flightdesk.RunOption
		apiCache flightapi.Cache = flightapi.NewMemoryCache()
	)

	if cfg.usesRedis() {
		client, err := redis.Open(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		checks["redis"] = redis.Healthcheck(client)
		runOpts = append(runOpts, flightdesk.ShutdownHook(redis.Shutdown(client)))
		apiCache = flightapi.NewRedisCache(client, cacheKeyPrefix)
		if strings.EqualFold(cfg.Session.Store, "redis") {
			store = session.NewRedisStore(client, sessionKeyPrefix)
		}
	}
	if cfg.Cache.TTL > 0 {
		apiOpts = append(apiOpts, flightapi.WithCache(apiCache, cfg.Cache.TTL))
	}

	opts := []flightdesk.Option{
		flightdesk.WithLogger(log),
		flightdesk.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.RequestLogger(),
		),
		flightdesk.WithCookies(cookies),
		flightdesk.WithSession(store, flightdesk.WithSessionSecure(cfg.Session.Secure)),
		flightdesk.WithAPI(flightapi.New(cfg.API.BaseURL, apiOpts...)),
		flightdesk.WithBookingSite(),
		flightdesk.WithHealthChecks(checks),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, flightdesk.WithMetrics(reg))
	}

	app := flightdesk.New(opts...)

	log.Info("flightdesk configured",
		slog.String("api", cfg.API.BaseURL),
		slog.String("session_store", cfg.Session.Store),
		slog.Duration("cache_ttl", cfg.Cache.TTL),
		slog.Bool("metrics", cfg.Metrics.Enabled))

	runOpts = append(runOpts, flightdesk.Logger(log))
	if ctx != nil {
		runOpts = append(runOpts, flightdesk.WithContext(ctx))
	}
	return app.Run(cfg.Address, runOpts...)
}
