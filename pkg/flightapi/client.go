package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

const maxBodySize = 4 << 20

// Client talks to the flight booking API. It is safe for concurrent use.
// A Client carries no token; use WithToken to get an authenticated copy.
type Client struct {
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	group    *singleflight.Group
	cache    Cache
	metrics  *metrics
	logger   *slog.Logger
	baseURL  string
	token    string
	cacheTTL time.Duration
	retries  uint
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		http:     httpClient,
		group:    &singleflight.Group{},
		cache:    o.cache,
		metrics:  newMetrics(o.registerer),
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
		cacheTTL: o.cacheTTL,
		retries:  o.retries,
	}

	failures := o.breakerFailures
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "flightapi",
		MaxRequests: 1,
		Timeout:     o.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return c
}

// WithToken returns a copy of c that authenticates with token.
// The copy shares the breaker, cache and metrics of c.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bearer token, if any.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	body     any
	query    url.Values
	endpoint string // metrics label
	method   string
	path     string
}

type response struct {
	body   []byte
	status int
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, endpoint: endpoint, path: path, query: query}, out)
}

func (c *Client) send(ctx context.Context, method, endpoint, path string, body, out any) error {
	return c.do(ctx, request{method: method, endpoint: endpoint, path: path, body: body}, out)
}

// do executes r through the circuit breaker, retrying idempotent requests,
// and decodes a successful body into out.
func (c *Client) do(ctx context.Context, r request, out any) error {
	start := time.Now()

	res, err := c.breaker.Execute(func() (any, error) {
		return c.attempt(ctx, r)
	})

	resp, _ := res.(*response)
	okStatus := 0
	if resp != nil {
		okStatus = resp.status
	}
	c.metrics.observe(r.endpoint, statusOf(err, okStatus), time.Since(start))

	if rejectedByBreaker(err) {
		return unavailable(r.endpoint, err)
	}
	if err != nil {
		return err
	}
	if out == nil || resp.status == http.StatusNoContent || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &Error{kind: errors.Join(ErrDecode, err), Message: msgRequestFailed, Endpoint: r.endpoint, Status: resp.status}
	}
	return nil
}

// attempt sends r once, or with retries for GET.
func (c *Client) attempt(ctx context.Context, r request) (*response, error) {
	if r.method != http.MethodGet || c.retries == 0 {
		resp, err := c.roundTrip(ctx, r)
		return resp, unwrapPermanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, func() (*response, error) {
		return c.roundTrip(ctx, r)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.DebugContext(ctx, "retrying api request",
				slog.String("endpoint", r.endpoint),
				slog.Duration("backoff", next),
				slog.String("error", err.Error()))
		}),
	)
}

// roundTrip performs a single HTTP exchange. Client errors (4xx) are
// returned as permanent so they are never retried.
func (c *Client) roundTrip(ctx context.Context, r request) (*response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, unavailable(r.endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, unavailable(r.endpoint, err)
	}

	out := &response{status: resp.StatusCode, body: body}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return out, nil
	}

	apiErr := translate(r.endpoint, resp.StatusCode, body)
	if resp.StatusCode >= http.StatusInternalServerError {
		apiErr.kind = errors.Join(apiErr.kind, ErrUnavailable)
		return out, apiErr
	}
	return out, backoff.Permanent(apiErr)
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func unwrapPermanent(err error) error {
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Unwrap()
	}
	return err
}

func unavailable(endpoint string, err error) *Error {
	return &Error{kind: errors.Join(ErrUnavailable, err), Message: msgUnavailable, Endpoint: endpoint}
}

func rejectedByBreaker(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// statusOf returns the HTTP status for metrics: the API status for *Error,
// 0 for transport failures and okStatus otherwise.
func statusOf(err error, okStatus int) int {
	if err == nil {
		return okStatus
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
