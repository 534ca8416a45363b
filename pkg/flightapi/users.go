package flightapi

import (
	"context"
	"net/http"
)

// FullProfile returns the user with booking statistics.
func (c *Client) FullProfile(ctx context.Context) (*UserProfile, error) {
	var p UserProfile
	if err := c.get(ctx, "users.profile", "/users/me/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes the user's name and email.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (*User, error) {
	var u User
	if err := c.send(ctx, http.MethodPut, "users.update", "/users/me", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword replaces the user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) (*MessageResponse, error) {
	var out MessageResponse
	body := passwordChange{Current: current, New: next}
	if err := c.send(ctx, http.MethodPatch, "users.change_password", "/users/me/change-password", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
