package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	tests := []struct {
		name string
		req  SignupRequest
		msg  string
	}{
		{"missing fields", SignupRequest{Email: "a@example.com", Password: strongPassword}, "All fields are required!"},
		{"mismatch", SignupRequest{Username: "a", Email: "a@example.com", Password: strongPassword, ConfirmPassword: "other"}, "Passwords do not match!"},
		{"weak", SignupRequest{Username: "a", Email: "a@example.com", Password: "short1!", ConfirmPassword: "short1!"}, "Password must be at least 12 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.auth.Signup(ctx, tt.req)
			requireKind(t, err, KindValidation, tt.msg)
		})
	}

	t.Run("creates account and session", func(t *testing.T) {
		g := h.signup(t, "Alice@Example.com")
		require.Equal(t, "alice@example.com", g.Account.Email)
		require.Equal(t, domain.DefaultSessionTimeout, g.Account.SessionTimeout)
		require.Equal(t, h.clock.Now().Add(domain.SignupSessionTTL), g.ExpiresAt)
		require.Equal(t, domain.ViewMain, g.View)

		acct, err := h.store.Accounts().GetAccountByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotEqual(t, strongPassword, acct.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword(strongPassword, acct.PasswordHash))

		id, err := h.auth.Authenticate(ctx, g.Token)
		require.NoError(t, err)
		require.Equal(t, acct.ID, id)
		require.True(t, h.timers.Has(cryptox.FingerprintToken(g.Token)))
	})

	t.Run("email is unique case-insensitively", func(t *testing.T) {
		_, err := h.auth.Signup(ctx, SignupRequest{
			Username: "x", Email: "ALICE@example.com", Password: strongPassword, ConfirmPassword: strongPassword,
		})
		requireKind(t, err, KindValidation, "User with this email already exists")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("validation does not consume the challenge", func(t *testing.T) {
		h := newHarness(t)
		res, err := h.auth.Login(ctx, LoginRequest{Email: "a@example.com", Password: "x"})
		requireKind(t, err, KindValidation, "All fields are required!")
		require.Nil(t, res.Challenge)
	})

	t.Run("wrong challenge regenerates and does not count", func(t *testing.T) {
		h := newHarness(t)
		h.signup(t, "bob@example.com")

		res, err := h.auth.Login(ctx, LoginRequest{
			Email: "bob@example.com", Password: "wrong", ChallengeID: h.challenge(t), ChallengeAnswer: "90",
		})
		requireKind(t, err, KindAuthentication, "Security challenge failed!")
		require.NotNil(t, res.Challenge)

		acct, err := h.store.Accounts().GetAccountByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Zero(t, acct.FailedAttempts)
	})

	t.Run("unknown email never touches accounts", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "carol@example.com")
		before, err := h.store.Accounts().GetAccountByID(ctx, g.Account.ID)
		require.NoError(t, err)

		for range 5 {
			res, err := h.login(t, "nobody@example.com", strongPassword)
			requireKind(t, err, KindAuthentication, "Invalid email or password!")
			require.NotNil(t, res.Challenge)
		}

		after, err := h.store.Accounts().GetAccountByID(ctx, g.Account.ID)
		require.NoError(t, err)
		require.Equal(t, before, after)

		_, err = h.store.Accounts().GetAccountByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		events, err := h.store.SecurityEvents().ListSecurityEventsByEmail(ctx, "nobody@example.com", 10)
		require.NoError(t, err)
		require.Len(t, events, 5)
		require.Equal(t, domain.SeverityMedium, events[0].Severity)
		require.Equal(t, "Someone tried to login with email: nobody@example.com", events[0].Message)
		require.Equal(t, 1, events[0].FailedAttempts)

		n, err := h.inbox.CountUnread(ctx, g.Account.ID)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("three failures lock with a critical alert", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "dave@example.com")
		id := g.Account.ID

		_, err := h.login(t, "dave@example.com", "wrong")
		requireKind(t, err, KindAuthentication, "Invalid password! 2 attempts remaining.")
		_, err = h.login(t, "dave@example.com", "wrong")
		requireKind(t, err, KindAuthentication, "Invalid password! 1 attempts remaining.")
		_, err = h.login(t, "dave@example.com", "wrong")
		e := requireKind(t, err, KindLockout, "Too many failed attempts. Account locked for 15 minutes.")
		require.Equal(t, 15, e.RemainingMinutes)

		ns, err := h.inbox.List(ctx, id)
		require.NoError(t, err)
		require.Len(t, ns, 3)
		require.Equal(t, domain.NotificationAccountLockout, ns[0].Type)
		require.Equal(t, domain.SeverityCritical, ns[0].Severity)
		require.Equal(t, "Account dave@example.com has been locked due to 3 failed login attempts.", ns[0].Message)
		require.Equal(t, domain.SeverityHigh, ns[1].Severity)
		require.Equal(t, "Failed login attempt 2 of 3 for account dave@example.com.", ns[1].Message)
		require.Equal(t, domain.SeverityMedium, ns[2].Severity)

		h.clock.Advance(5 * time.Minute)
		_, err = h.login(t, "dave@example.com", strongPassword)
		e = requireKind(t, err, KindLockout, "Account locked. Try again in 10 minutes.")
		require.Equal(t, 10, e.RemainingMinutes)

		acct, err := h.store.Accounts().GetAccountByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, 3, acct.FailedAttempts)

		ns, err = h.inbox.List(ctx, id)
		require.NoError(t, err)
		require.Len(t, ns, 3)

		h.clock.Advance(10 * time.Minute)
		_, err = h.login(t, "dave@example.com", "wrong")
		requireKind(t, err, KindAuthentication, "Invalid password! 2 attempts remaining.")

		res, err := h.login(t, "dave@example.com", strongPassword)
		require.NoError(t, err)
		require.NotNil(t, res.Grant)
		require.Equal(t, "Welcome back, alice!", res.Grant.Message)

		acct, err = h.store.Accounts().GetAccountByID(ctx, id)
		require.NoError(t, err)
		require.Zero(t, acct.FailedAttempts)
		require.Nil(t, acct.LockedUntil)
	})

	t.Run("second failure captures when the camera was granted", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "erin@example.com")
		consent := h.accept(t, domain.Permissions{Camera: true, Location: true, Storage: true})

		attempt := func(cam *fakeCamera) {
			_, err := h.auth.Login(ctx, LoginRequest{
				Email: "erin@example.com", Password: "wrong",
				ChallengeID: h.challenge(t), ChallengeAnswer: "91",
				ConsentToken: consent, Camera: cam, Client: testClient,
			})
			require.Error(t, err)
		}

		first := newFakeCamera(1, solidFrame)
		attempt(first)
		require.Zero(t, first.opens.Load())

		second := newFakeCamera(2, solidFrame)
		attempt(second)
		require.EqualValues(t, 1, second.opens.Load())
		require.True(t, second.stream.allStopped())

		ns, err := h.inbox.List(ctx, g.Account.ID)
		require.NoError(t, err)
		require.NotEmpty(t, ns[0].Screenshot)
		require.Empty(t, ns[1].Screenshot)
	})

	t.Run("no capture without camera consent", func(t *testing.T) {
		h := newHarness(t)
		h.signup(t, "frank@example.com")

		cam := newFakeCamera(1, solidFrame)
		for range 2 {
			_, err := h.auth.Login(ctx, LoginRequest{
				Email: "frank@example.com", Password: "wrong",
				ChallengeID: h.challenge(t), ChallengeAnswer: "91",
				Camera: cam, Client: testClient,
			})
			require.Error(t, err)
		}
		require.Zero(t, cam.opens.Load())
	})

	t.Run("new device is reported", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "gina@example.com")

		other := testClient
		other.UserAgent = "Mozilla/5.0 (iPhone)"
		res, err := h.auth.Login(ctx, LoginRequest{
			Email: "gina@example.com", Password: strongPassword,
			ChallengeID: h.challenge(t), ChallengeAnswer: "91", Client: other,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Grant)

		ns, err := h.inbox.List(ctx, g.Account.ID)
		require.NoError(t, err)
		require.Len(t, ns, 1)
		require.Equal(t, domain.NotificationNewDevice, ns[0].Type)
		require.Equal(t, domain.SeverityLow, ns[0].Severity)
	})
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("logout invalidates the token", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "hana@example.com")

		require.NoError(t, h.auth.Logout(ctx, g.Token))
		_, err := h.auth.Authenticate(ctx, g.Token)
		require.ErrorIs(t, err, ErrNoSession)
		require.False(t, h.timers.Has(cryptox.FingerprintToken(g.Token)))
		require.NoError(t, h.auth.Logout(ctx, g.Token))
	})

	t.Run("stored expiry is enforced and purged", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "ivan@example.com")
		h.timers.StopAll()

		h.clock.Advance(domain.SignupSessionTTL)
		_, err := h.auth.Authenticate(ctx, g.Token)
		require.ErrorIs(t, err, ErrSessionExpired)

		_, err = h.store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(g.Token))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("idle timer expires the session and shows the expired view once", func(t *testing.T) {
		h := newHarness(t)
		consent := h.accept(t, domain.Permissions{Camera: true, Location: true, Storage: true})
		g := h.signup(t, "jack@example.com")

		res, err := h.auth.Resolve(ctx, consent, g.Token)
		require.NoError(t, err)
		require.Equal(t, domain.ViewMain, res.View)
		require.Equal(t, g.Account.ID, res.Account.ID)

		h.sched.Advance(4 * time.Minute)
		_, err = h.auth.Activity(ctx, g.Token)
		require.NoError(t, err)

		h.sched.Advance(4*time.Minute + 59*time.Second)
		_, err = h.auth.Authenticate(ctx, g.Token)
		require.NoError(t, err)

		h.sched.Advance(time.Second)
		_, err = h.auth.Authenticate(ctx, g.Token)
		require.ErrorIs(t, err, ErrNoSession)

		res, err = h.auth.Resolve(ctx, consent, g.Token)
		require.NoError(t, err)
		require.Equal(t, domain.ViewSessionExpired, res.View)

		res, err = h.auth.Resolve(ctx, consent, g.Token)
		require.NoError(t, err)
		require.Equal(t, domain.ViewAuth, res.View)
	})

	t.Run("activity extends the stored expiry", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "kate@example.com")
		hash := cryptox.FingerprintToken(g.Token)

		h.sched.Advance(2 * time.Minute)
		act, err := h.auth.Activity(ctx, g.Token)
		require.NoError(t, err)
		require.Equal(t, 5*time.Minute, act.Remaining)
		require.True(t, h.clock.Now().Add(5*time.Minute).Equal(act.ExpiresAt))

		sess, err := h.store.Sessions().GetSessionByTokenHash(ctx, hash)
		require.NoError(t, err)
		require.Equal(t, h.clock.Now().Add(5*time.Minute), sess.ExpiresAt)
	})

	t.Run("activity early in a session keeps the stored expiry on the idle deadline", func(t *testing.T) {
		h := newHarness(t)
		g := h.signup(t, "liam@example.com")
		hash := cryptox.FingerprintToken(g.Token)

		h.sched.Advance(20 * time.Second)
		act, err := h.auth.Activity(ctx, g.Token)
		require.NoError(t, err)
		deadline := h.clock.Now().Add(5 * time.Minute)
		require.True(t, deadline.Equal(act.ExpiresAt))

		sess, err := h.store.Sessions().GetSessionByTokenHash(ctx, hash)
		require.NoError(t, err)
		require.True(t, deadline.Equal(sess.ExpiresAt), "stored %s, timer %s", sess.ExpiresAt, deadline)

		// Past the first stored expiry but inside the idle deadline.
		h.sched.Advance(4*time.Minute + 50*time.Second)
		act, err = h.auth.Activity(ctx, g.Token)
		require.NoError(t, err)
		require.Equal(t, 5*time.Minute, act.Remaining)
	})

	t.Run("stored expiry past its deadline resolves to the expired view", func(t *testing.T) {
		h := newHarness(t)
		consent := h.accept(t, domain.Permissions{Camera: true, Location: true, Storage: true})
		g := h.signup(t, "mia@example.com")
		h.timers.StopAll()

		h.clock.Advance(domain.SignupSessionTTL)
		res, err := h.auth.Resolve(ctx, consent, g.Token)
		require.NoError(t, err)
		require.Equal(t, domain.ViewSessionExpired, res.View)
	})

	t.Run("resolve without consent or session", func(t *testing.T) {
		h := newHarness(t)

		res, err := h.auth.Resolve(ctx, "", "")
		require.NoError(t, err)
		require.Equal(t, domain.ViewConsent, res.View)

		consent := h.accept(t, domain.Permissions{Camera: true, Location: true, Storage: true})
		res, err = h.auth.Resolve(ctx, consent, "")
		require.NoError(t, err)
		require.Equal(t, domain.ViewAuth, res.View)

		res, err = h.auth.Resolve(ctx, consent, "bogus-token")
		require.NoError(t, err)
		require.Equal(t, domain.ViewAuth, res.View)
	})
}
