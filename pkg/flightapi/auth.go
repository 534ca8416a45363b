package flightapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Login exchanges email and password for an access token using the OAuth2
// password grant form expected by the API.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	start := time.Now()

	cfg := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/auth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	res, err := c.breaker.Execute(func() (any, error) {
		tok, err := cfg.PasswordCredentialsToken(context.WithValue(ctx, oauth2.HTTPClient, c.http), email, password)
		if err == nil {
			return tok, nil
		}

		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			apiErr := translateLogin(re.Response.StatusCode, re.Body)
			if re.Response.StatusCode >= http.StatusInternalServerError {
				apiErr.kind = errors.Join(apiErr.kind, ErrUnavailable)
			}
			return nil, apiErr
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, unavailable("auth.token", err)
	})

	c.metrics.observe("auth.token", statusOf(err, http.StatusOK), time.Since(start))

	if rejectedByBreaker(err) {
		return nil, unavailable("auth.token", err)
	}
	if err != nil {
		c.logger.DebugContext(ctx, "login rejected", slog.String("error", err.Error()))
		return nil, err
	}

	tok := res.(*oauth2.Token)
	return &TokenResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType}, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (*User, error) {
	var u User
	body := registration{FullName: fullName, Email: email, Password: password}
	if err := c.send(ctx, http.MethodPost, "auth.register", "/auth/register", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "auth.me", "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
