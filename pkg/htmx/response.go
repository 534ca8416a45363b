package htmx

import (
	"net/http"
	"strings"
)

// Swap is an hx-swap strategy.
type Swap string

// Swap strategies.
const (
	SwapInnerHTML Swap = "innerHTML"
	SwapOuterHTML Swap = "outerHTML"
	SwapNone      Swap = "none"
)

// Response collects htmx response headers. The zero value sets nothing.
type Response struct {
	PushURL  string
	Retarget string
	Reswap   Swap
	Triggers []string
	Refresh  bool
}

// Option mutates a Response.
type Option func(*Response)

// PushURL records url in the browser history.
func PushURL(url string) Option {
	return func(r *Response) { r.PushURL = url }
}

// Retarget swaps the response into selector instead of the requested target.
func Retarget(selector string) Option {
	return func(r *Response) { r.Retarget = selector }
}

// Reswap overrides the swap strategy.
func Reswap(s Swap) Option {
	return func(r *Response) { r.Reswap = s }
}

// Trigger fires client-side events after the response is received.
func Trigger(events ...string) Option {
	return func(r *Response) { r.Triggers = append(r.Triggers, events...) }
}

// Refresh forces a full page reload.
func Refresh() Option {
	return func(r *Response) { r.Refresh = true }
}

// NewResponse applies opts.
func NewResponse(opts ...Option) *Response {
	r := &Response{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply writes the headers. Must run before WriteHeader.
func (r *Response) Apply(w http.ResponseWriter) {
	if r == nil {
		return
	}
	h := w.Header()
	if r.PushURL != "" {
		h.Set(HeaderPushURL, r.PushURL)
	}
	if r.Retarget != "" {
		h.Set(HeaderRetarget, r.Retarget)
	}
	if r.Reswap != "" {
		h.Set(HeaderReswap, string(r.Reswap))
	}
	if len(r.Triggers) > 0 {
		h.Set(HeaderTrigger, strings.Join(r.Triggers, ", "))
	}
	if r.Refresh {
		h.Set(HeaderRefresh, "true")
	}
}
