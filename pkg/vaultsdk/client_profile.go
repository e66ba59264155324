package vaultsdk

import (
	"context"
	"net/http"
)

// GetProfile returns the signed-in account.
func (c *Client) GetProfile(ctx context.Context) (*AccountResponse, error) {
	var out ProfileResponse
	if err := c.call(ctx, http.MethodGet, "/v1/profile", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile changes username, email or session timeout.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*AccountResponse, error) {
	var out ProfileResponse
	if err := c.call(ctx, http.MethodPatch, "/v1/profile", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ChangePassword replaces the password of the signed-in account.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.call(ctx, http.MethodPost, "/v1/profile/password", req, nil, http.StatusOK)
}

// RequestPasswordReset asks for a reset code. The answer is the same
// whether or not the email is registered.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.call(ctx, http.MethodPost, "/v1/password-reset", ResetRequest{Email: email}, nil, http.StatusAccepted)
}

// ConfirmPasswordReset sets a new password with a reset code.
func (c *Client) ConfirmPasswordReset(ctx context.Context, req ResetConfirmRequest) error {
	return c.call(ctx, http.MethodPost, "/v1/password-reset/confirm", req, nil, http.StatusOK)
}
