package flightapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrMalformedToken is returned when an access token cannot be parsed.
var ErrMalformedToken = errors.New("flightapi: malformed token")

// TokenExpiry reads the exp claim of an access token without verifying its
// signature. ok is false when the token carries no exp claim.
func TokenExpiry(token string) (exp time.Time, ok bool, err error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, errors.Join(ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// TokenExpired reports whether token is past its exp claim at now.
// Tokens without exp and tokens that cannot be parsed are not considered
// expired; the API decides for those.
func TokenExpired(token string, now time.Time) bool {
	exp, ok, err := TokenExpiry(token)
	if err != nil || !ok {
		return false
	}
	return !now.Before(exp)
}
