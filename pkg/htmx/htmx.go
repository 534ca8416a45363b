package htmx

import (
	"net/http"
	"strings"
)

// Request headers.
const (
	HeaderRequest    = "HX-Request"
	HeaderBoosted    = "HX-Boosted"
	HeaderTarget     = "HX-Target"
	HeaderCurrentURL = "HX-Current-URL"
)

// Response headers.
const (
	HeaderRedirect = "HX-Redirect"
	HeaderLocation = "HX-Location"
	HeaderPushURL  = "HX-Push-Url"
	HeaderRetarget = "HX-Retarget"
	HeaderReswap   = "HX-Reswap"
	HeaderTrigger  = "HX-Trigger"
	HeaderRefresh  = "HX-Refresh"
)

// IsHTMX reports whether htmx issued the request.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost link or form.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderBoosted) == "true"
}

// IsPartial reports whether htmx targets an element other than the page
// body, so a fragment is enough.
func IsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r) && r.Header.Get(HeaderTarget) != ""
}

// Target returns the id of the element htmx will swap into.
func Target(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get(HeaderTarget), "#")
}

// Redirect sends the browser to url. htmx requests get HX-Redirect with
// 200 since htmx does not follow 3xx into a full navigation; others get a
// regular redirect with status.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
