package http_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

// TestConsentGate verifies signup and login stay closed until every
// permission was granted.
func TestConsentGate(t *testing.T) {
	h := newHarness(t)

	signup := vaultsdk.SignupRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        strongPassword,
		ConfirmPassword: strongPassword,
		Client:          browser,
	}

	t.Run("no decision", func(t *testing.T) {
		c := h.anonymous(t)
		_, err := c.Signup(t.Context(), signup)
		requireAPIError(t, err, http.StatusForbidden, "Consent required")

		_, err = c.Login(t.Context(), vaultsdk.LoginRequest{Email: "alice@example.com", Password: "x", ChallengeAnswer: "91"})
		requireAPIError(t, err, http.StatusForbidden, "Consent required")
	})

	t.Run("declined", func(t *testing.T) {
		c := h.anonymous(t)
		view, err := c.DeclineConsent(t.Context(), allGranted, 800)
		require.NoError(t, err)
		require.Equal(t, vaultsdk.ViewBlocked, view)

		_, err = c.Signup(t.Context(), signup)
		requireAPIError(t, err, http.StatusForbidden, "Consent required")
	})

	t.Run("partial grant", func(t *testing.T) {
		c := h.anonymous(t)
		view, err := c.AcceptConsent(t.Context(), vaultsdk.Permissions{Camera: true, Storage: true}, 800)
		require.NoError(t, err)
		require.Equal(t, vaultsdk.ViewBlocked, view)

		_, err = c.Signup(t.Context(), signup)
		requireAPIError(t, err, http.StatusForbidden, "Consent required")
	})

	t.Run("accepted", func(t *testing.T) {
		c := h.client(t)
		res, err := c.Signup(t.Context(), signup)
		require.NoError(t, err)
		require.Equal(t, vaultsdk.ViewMain, res.View)
	})
}

// TestSignup covers account creation and its validation errors.
func TestSignup(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	res := h.signup(t, c, "Alice@Example.com")
	require.True(t, res.Success)
	require.Equal(t, "Account created successfully! Welcome to Password Manager!", res.Message)
	require.Equal(t, "alice@example.com", res.User.Email)
	require.Equal(t, 5, res.User.SessionTimeout)
	require.True(t, res.ExpiresAt.After(h.clock.Now()))

	profile, err := c.GetProfile(t.Context())
	require.NoError(t, err)
	require.Equal(t, res.User.ID, profile.ID)

	tests := []struct {
		name    string
		req     vaultsdk.SignupRequest
		message string
	}{
		{
			name:    "missing fields",
			req:     vaultsdk.SignupRequest{Email: "bob@example.com"},
			message: "All fields are required!",
		},
		{
			name: "passwords differ",
			req: vaultsdk.SignupRequest{
				Username: "bob", Email: "bob@example.com",
				Password: strongPassword, ConfirmPassword: strongPassword + "x",
			},
			message: "Passwords do not match!",
		},
		{
			name: "weak password",
			req: vaultsdk.SignupRequest{
				Username: "bob", Email: "bob@example.com",
				Password: "password", ConfirmPassword: "password",
			},
		},
		{
			name: "duplicate email",
			req: vaultsdk.SignupRequest{
				Username: "alice2", Email: "alice@example.com",
				Password: strongPassword, ConfirmPassword: strongPassword,
			},
			message: "User with this email already exists",
		},
	}

	other := h.client(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := other.Signup(t.Context(), tt.req)
			requireAPIError(t, err, http.StatusBadRequest, tt.message)
		})
	}
}

// TestLoginAndLogout verifies the session cookie round trip.
func TestLoginAndLogout(t *testing.T) {
	h := newHarness(t)
	h.signup(t, h.client(t), "alice@example.com")

	c := h.client(t)
	_, err := c.GetProfile(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, "Not authenticated")

	res, err := h.login(t, c, "ALICE@example.com", strongPassword)
	require.NoError(t, err)
	require.Equal(t, "Welcome back, alice!", res.Message)
	require.Equal(t, vaultsdk.ViewMain, res.View)

	sess, err := c.GetSession(t.Context())
	require.NoError(t, err)
	require.Equal(t, vaultsdk.ViewMain, sess.View)
	require.NotNil(t, sess.User)
	require.Equal(t, "alice@example.com", sess.User.Email)
	require.Equal(t, 300, sess.RemainingSeconds)

	require.NoError(t, c.Logout(t.Context()))

	_, err = c.GetProfile(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, "Not authenticated")

	sess, err = c.GetSession(t.Context())
	require.NoError(t, err)
	require.Equal(t, vaultsdk.ViewAuth, sess.View)

	// Logging out twice is not an error.
	require.NoError(t, c.Logout(t.Context()))
}

// TestLoginFailuresReturnChallenge verifies every rejected login carries a
// replacement challenge and used challenges cannot be replayed.
func TestLoginFailuresReturnChallenge(t *testing.T) {
	h := newHarness(t)
	h.signup(t, h.client(t), "alice@example.com")
	c := h.client(t)

	t.Run("missing fields", func(t *testing.T) {
		_, err := c.Login(t.Context(), vaultsdk.LoginRequest{Email: "alice@example.com"})
		apiErr := requireAPIError(t, err, http.StatusBadRequest, "All fields are required!")
		require.Nil(t, apiErr.Challenge)
	})

	t.Run("wrong answer", func(t *testing.T) {
		ch, err := c.GetChallenge(t.Context())
		require.NoError(t, err)

		_, err = c.Login(t.Context(), vaultsdk.LoginRequest{
			Email:           "alice@example.com",
			Password:        strongPassword,
			ChallengeID:     ch.ID,
			ChallengeAnswer: "90",
			Client:          browser,
		})
		apiErr := requireAPIError(t, err, http.StatusUnauthorized, "Security challenge failed!")
		require.NotNil(t, apiErr.Challenge)
		require.NotEqual(t, ch.ID, apiErr.Challenge.ID)

		// The consumed challenge cannot be replayed with the right answer.
		_, err = c.Login(t.Context(), vaultsdk.LoginRequest{
			Email:           "alice@example.com",
			Password:        strongPassword,
			ChallengeID:     ch.ID,
			ChallengeAnswer: "91",
			Client:          browser,
		})
		requireAPIError(t, err, http.StatusUnauthorized, "Security challenge failed!")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := h.login(t, c, "nobody@example.com", strongPassword)
		apiErr := requireAPIError(t, err, http.StatusUnauthorized, "Invalid email or password!")
		require.NotNil(t, apiErr.Challenge)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := h.login(t, c, "alice@example.com", "Wrong123!Pass")
		apiErr := requireAPIError(t, err, http.StatusUnauthorized, "Invalid password! 2 attempts remaining.")
		require.NotNil(t, apiErr.Challenge)
		require.Equal(t, "What is 7 × 13?", apiErr.Challenge.Prompt)
	})
}

// TestLockout verifies the third wrong password locks the account for
// fifteen minutes, and the lock lapses afterwards.
func TestLockout(t *testing.T) {
	h := newHarness(t)
	h.signup(t, h.client(t), "alice@example.com")
	c := h.client(t)

	for i, want := range []string{
		"Invalid password! 2 attempts remaining.",
		"Invalid password! 1 attempts remaining.",
	} {
		_, err := h.login(t, c, "alice@example.com", "Wrong123!Pass")
		requireAPIError(t, err, http.StatusUnauthorized, want)
		t.Logf("attempt %d rejected", i+1)
	}

	_, err := h.login(t, c, "alice@example.com", "Wrong123!Pass")
	apiErr := requireAPIError(t, err, http.StatusLocked, "Too many failed attempts. Account locked for 15 minutes.")
	require.True(t, apiErr.Locked())
	require.Equal(t, 15, apiErr.RemainingMinutes)

	// The right password is refused while locked.
	h.clock.set(h.clock.Now().Add(5*time.Minute + 30*time.Second))
	_, err = h.login(t, c, "alice@example.com", strongPassword)
	apiErr = requireAPIError(t, err, http.StatusLocked, "Account locked. Try again in 10 minutes.")
	require.Equal(t, 10, apiErr.RemainingMinutes)
	require.NotNil(t, apiErr.Challenge)

	h.clock.set(h.clock.Now().Add(10 * time.Minute))
	res, err := h.login(t, c, "alice@example.com", strongPassword)
	require.NoError(t, err)
	require.Equal(t, vaultsdk.ViewMain, res.View)
}

// TestMalformedBodies verifies decoding errors never reach the services.
func TestMalformedBodies(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "consent unknown field", path: "/v1/consent/accept", body: `{"permissions":{},"bogus":1}`},
		{name: "signup not json", path: "/v1/signup", body: `username=alice`},
		{name: "login empty", path: "/v1/login", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, h.srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.HTTPClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
