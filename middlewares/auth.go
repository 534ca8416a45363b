package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/flightdesk/internal"
)

// RequireAuth sends visitors without a token to loginPath. It guards form
// actions; pages are guarded by the navigation router.
func RequireAuth(loginPath string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if !c.IsAuthenticated() {
				code := http.StatusFound
				if c.Request().Method != http.MethodGet {
					code = http.StatusSeeOther
				}
				return c.Redirect(code, loginPath)
			}
			return next(c)
		}
	}
}
