package flightapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultRetries         = 2
	defaultCacheTTL        = time.Minute
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

type options struct {
	httpClient      *http.Client
	logger          *slog.Logger
	cache           Cache
	registerer      prometheus.Registerer
	timeout         time.Duration
	cacheTTL        time.Duration
	breakerTimeout  time.Duration
	retries         uint
	breakerFailures uint32
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sets the HTTP client. Its Timeout is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger used for retries and breaker transitions.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCache enables caching of flight details with the given TTL.
// A zero TTL keeps the default.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = c
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

// WithRetries sets how many times idempotent requests are retried after a
// transport error or a 5xx response.
func WithRetries(n uint) Option {
	return func(o *options) {
		o.retries = n
	}
}

// WithBreaker sets the number of consecutive failures that open the circuit
// and how long it stays open.
func WithBreaker(failures uint32, openFor time.Duration) Option {
	return func(o *options) {
		if failures > 0 {
			o.breakerFailures = failures
		}
		if openFor > 0 {
			o.breakerTimeout = openFor
		}
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

func defaultOptions() *options {
	return &options{
		timeout:         defaultTimeout,
		retries:         defaultRetries,
		cacheTTL:        defaultCacheTTL,
		breakerFailures: defaultBreakerFailures,
		breakerTimeout:  defaultBreakerTimeout,
	}
}
