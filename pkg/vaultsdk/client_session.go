package vaultsdk

import (
	"context"
	"net/http"
)

// ============================================================================
// Consent
// ============================================================================

// AcceptConsent answers the consent prompt. The returned view is "auth"
// only when every permission was granted.
func (c *Client) AcceptConsent(ctx context.Context, p Permissions, timeToDecisionMs int64) (string, error) {
	return c.consent(ctx, "/v1/consent/accept", p, timeToDecisionMs)
}

// DeclineConsent refuses the consent prompt. The returned view is "blocked".
func (c *Client) DeclineConsent(ctx context.Context, p Permissions, timeToDecisionMs int64) (string, error) {
	return c.consent(ctx, "/v1/consent/decline", p, timeToDecisionMs)
}

func (c *Client) consent(ctx context.Context, path string, p Permissions, ms int64) (string, error) {
	var out ConsentResponse
	req := ConsentRequest{Permissions: p, TimeToDecisionMs: ms}
	if err := c.call(ctx, http.MethodPost, path, req, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.View, nil
}

// ============================================================================
// Session
// ============================================================================

// GetSession resolves the view for this browser: consent, auth, main or
// session_expired.
func (c *Client) GetSession(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.call(ctx, http.MethodGet, "/v1/session", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activity resets the idle timer of the current session.
func (c *Client) Activity(ctx context.Context) (int, error) {
	var out ActivityResponse
	if err := c.call(ctx, http.MethodPost, "/v1/session/activity", nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.RemainingSeconds, nil
}

// ============================================================================
// Authentication
// ============================================================================

// GetChallenge fetches a new login challenge.
func (c *Client) GetChallenge(ctx context.Context) (*ChallengeResponse, error) {
	var out ChallengeResponse
	if err := c.call(ctx, http.MethodGet, "/v1/challenge", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup creates an account and signs the client in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.call(ctx, http.MethodPost, "/v1/signup", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs the client in. On failure the *APIError carries the next
// challenge.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.call(ctx, http.MethodPost, "/v1/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/v1/logout", nil, nil, http.StatusOK)
}
