package redis

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
)

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	poolSize     int
	retries      uint
	retryBase    time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	dialTimeout  time.Duration
}

func defaultOptions() *options {
	return &options{
		poolSize:     10,
		retries:      5,
		retryBase:    500 * time.Millisecond,
		readTimeout:  3 * time.Second,
		writeTimeout: 3 * time.Second,
		dialTimeout:  5 * time.Second,
	}
}

// WithPoolSize sets the maximum number of connections in the pool.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithRetry sets how many times the initial ping is attempted and the first
// backoff interval. Default: 5 attempts starting at 500ms.
func WithRetry(attempts uint, base time.Duration) Option {
	return func(o *options) {
		o.retries = max(attempts, 1)
		if base > 0 {
			o.retryBase = base
		}
	}
}

// WithTimeouts sets dial, read and write timeouts. Zero values keep defaults.
func WithTimeouts(dial, read, write time.Duration) Option {
	return func(o *options) {
		if dial > 0 {
			o.dialTimeout = dial
		}
		if read > 0 {
			o.readTimeout = read
		}
		if write > 0 {
			o.writeTimeout = write
		}
	}
}

// Open parses a redis:// or rediss:// URL and pings the server, retrying
// with exponential backoff until it answers or the attempts run out.
//
//	client, err := redis.Open(ctx, cfg.Redis.URL, redis.WithPoolSize(20))
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.DialTimeout = o.dialTimeout
	ro.ReadTimeout = o.readTimeout
	ro.WriteTimeout = o.writeTimeout

	client := redis.NewClient(ro)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.retryBase

	_, err = backoff.Retry(ctx, func() (string, error) {
		return client.Ping(ctx).Result()
	}, backoff.WithBackOff(b), backoff.WithMaxTries(o.retries))
	if err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return client, nil
}

// Healthcheck returns a readiness check that pings Redis.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the client.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
