package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Statuses.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// ErrUnhealthy is returned by Run when at least one check failed.
var ErrUnhealthy = errors.New("health: unhealthy")

// Check probes one dependency.
type Check func(ctx context.Context) error

// Checks maps dependency names to probes.
type Checks map[string]Check

// Report is the aggregated result of a run.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Result is the outcome of one check.
type Result struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a Run.
type Option func(*config)

// WithTimeout bounds the whole run. Default 3s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes checks concurrently. One failing check never cancels the
// others. The error is ErrUnhealthy joined with each failure.
func Run(ctx context.Context, checks Checks, opts ...Option) (Report, error) {
	cfg := &config{timeout: 3 * time.Second, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}

	report := Report{Status: StatusUp, Checks: make(map[string]Result, len(checks))}
	if len(checks) == 0 {
		return report, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	for _, name := range slices.Sorted(maps.Keys(checks)) {
		check := checks[name]
		g.Go(func() error {
			start := time.Now()
			err := check(ctx)
			res := Result{Status: StatusUp, Duration: time.Since(start).Round(time.Millisecond).String()}
			if err != nil {
				res.Status = StatusDown
				res.Error = err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = res
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		report.Status = StatusDown
		return report, errors.Join(append([]error{ErrUnhealthy}, errs...)...)
	}
	return report, nil
}

// HTTPCheck reports an upstream as up when url answers with a status
// below 500.
func HTTPCheck(client *http.Client, url string) Check {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("upstream status %d", resp.StatusCode)
		}
		return nil
	}
}
