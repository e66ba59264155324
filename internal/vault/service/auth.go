package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/kv"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/aussiebroadwan/vault/pkg/idx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
)

const (
	// expiredMarkerTTL is how long a "session expired" screen is remembered
	// for a browser that has not come back yet.
	expiredMarkerTTL = time.Hour
)

// AuthService coordinates challenge, lockout, notifications, sessions and
// the idle timer into signup, login and logout.
type AuthService struct {
	Store      store.Store
	KV         KeyValueStore
	Challenges *ChallengeService
	Consents   *ConsentService
	Devices    DeviceCollector
	Lockout    LockoutTracker
	Notifier   *NotificationEmitter
	Capture    *DeterrentCapture
	Timers     *TimerRegistry
	Passwords  PasswordVerifier
	Clock      Clock
}

// SignupRequest carries the signup form.
type SignupRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Client          ClientContext
}

// LoginRequest carries the login form. Camera is the capture source for
// deterrent photos; it is only used when the consent marker granted it.
type LoginRequest struct {
	Email           string
	Password        string
	ChallengeID     string
	ChallengeAnswer string
	ConsentToken    string
	Camera          CameraDevice
	Client          ClientContext
}

// SessionGrant is a newly issued session. Token goes to the cookie and is
// never stored.
type SessionGrant struct {
	Account   domain.Account
	Token     string
	ExpiresAt time.Time
	Message   string
	View      domain.View
}

// LoginResult holds a grant on success. On failure Challenge is the next
// challenge to show, when the old one was used up.
type LoginResult struct {
	Grant     *SessionGrant
	Challenge *Challenge
}

// ResolveResult describes what a returning browser should see.
type ResolveResult struct {
	View    domain.View
	Account *domain.Account
}

func (s *AuthService) now() time.Time { return nowFrom(s.Clock) }

var defaultVerifier PasswordVerifier = cryptox.Argon2Verifier{}

func (s *AuthService) verifier() PasswordVerifier {
	if s.Passwords == nil {
		return defaultVerifier
	}
	return s.Passwords
}

// Signup creates an account and signs it in.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SessionGrant, error) {
	log := slogx.FromContext(ctx)

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, validationError("All fields are required!")
	}
	if req.Password != req.ConfirmPassword {
		return nil, validationError("Passwords do not match!")
	}
	if res := ValidatePassword(req.Password); !res.OK {
		return nil, validationError(res.Reason)
	}

	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, email); err == nil {
		return nil, validationError("User with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, persistenceError("Failed to create user", err)
	}

	hash, err := s.verifier().Hash(req.Password)
	if err != nil {
		return nil, persistenceError("Failed to create user", err)
	}

	device := s.Devices.Collect(req.Client)
	now := s.now()
	acct := domain.Account{
		ID:                idx.New().String(),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		SessionTimeout:    domain.DefaultSessionTimeout,
		DeviceFingerprint: device.Fingerprint,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Store.Accounts().CreateAccount(ctx, acct); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, validationError("User with this email already exists")
		}
		return nil, persistenceError("Failed to create user", err)
	}
	log.Info("account created", "account_id", acct.ID)

	grant, err := s.issueSession(ctx, acct, device, req.Client, domain.SignupSessionTTL)
	if err != nil {
		return nil, err
	}
	grant.Message = "Account created successfully! Welcome to Password Manager!"
	return grant, nil
}

// Login checks the challenge, then the account, its lock and the password.
// Every failure after the challenge was checked comes with a new challenge.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.ChallengeAnswer) == "" {
		return LoginResult{}, validationError("All fields are required!")
	}

	ok, err := s.Challenges.Verify(ctx, req.ChallengeID, req.ChallengeAnswer)
	if err != nil {
		return s.fail(ctx, persistenceError("Security challenge failed!", err))
	}
	if !ok {
		log.Info("login rejected: challenge failed")
		return s.fail(ctx, authError("Security challenge failed!"))
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		s.recordUnknown(ctx, req)
		return s.fail(ctx, authError("Invalid email or password!"))
	}
	if err != nil {
		return s.fail(ctx, persistenceError("Login failed. Please try again.", err))
	}

	now := s.now()
	if locked, mins := s.Lockout.Locked(acct, now); locked {
		log.Warn("login rejected: account locked", "account_id", acct.ID, "remaining_minutes", mins)
		return s.fail(ctx, &Error{
			Kind:             KindLockout,
			Message:          fmt.Sprintf("Account locked. Try again in %d minutes.", mins),
			RemainingMinutes: mins,
		})
	}

	if !s.verifier().Verify(req.Password, acct.PasswordHash) {
		return s.fail(ctx, s.recordFailure(ctx, acct, req, now))
	}

	device := s.Devices.Collect(req.Client)
	update := s.Lockout.RecordSuccess()
	update.DeviceFingerprint = &device.Fingerprint
	if err := s.Store.Accounts().UpdateAccount(ctx, acct.ID, update); err != nil {
		return s.fail(ctx, persistenceError("Failed to update user", err))
	}
	prevFingerprint := acct.DeviceFingerprint
	acct.FailedAttempts = 0
	acct.LockedUntil = nil
	acct.DeviceFingerprint = device.Fingerprint

	if prevFingerprint != "" && prevFingerprint != device.Fingerprint {
		loc := s.Devices.CollectLocation(ctx, req.Client)
		if _, err := s.Notifier.Emit(ctx, Alert{
			Type:     domain.NotificationNewDevice,
			Account:  &acct,
			Device:   device,
			Location: &loc,
		}); err != nil {
			log.Error("failed to record new device notification", "error", err)
		}
	}

	grant, err := s.issueSession(ctx, acct, device, req.Client, acct.Timeout())
	if err != nil {
		return s.fail(ctx, err)
	}
	grant.Message = fmt.Sprintf("Welcome back, %s!", acct.Username)
	log.Info("login succeeded", "account_id", acct.ID)
	return LoginResult{Grant: grant}, nil
}

// fail attaches a fresh challenge to a failed login.
func (s *AuthService) fail(ctx context.Context, cause error) (LoginResult, error) {
	ch, err := s.Challenges.Issue(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to issue challenge", "error", err)
		return LoginResult{}, cause
	}
	return LoginResult{Challenge: &ch}, cause
}

// recordUnknown notes an attempt against an email nobody owns. It never
// reads or writes accounts.
func (s *AuthService) recordUnknown(ctx context.Context, req LoginRequest) {
	log := slogx.FromContext(ctx)
	log.Warn("login rejected: unknown email")

	device := s.Devices.Collect(req.Client)
	loc := s.Devices.CollectLocation(ctx, req.Client)
	if _, err := s.Notifier.Emit(ctx, Alert{
		Type:           domain.NotificationFailedLogin,
		AttemptedEmail: strings.TrimSpace(req.Email),
		FailedAttempts: 1,
		Device:         device,
		Location:       &loc,
	}); err != nil {
		log.Error("failed to record unknown email attempt", "error", err)
	}
}

// recordFailure advances the lockout state, captures a deterrent photo from
// the second attempt on, and emits the matching notification.
func (s *AuthService) recordFailure(ctx context.Context, acct domain.Account, req LoginRequest, now time.Time) error {
	log := slogx.FromContext(ctx)

	f := s.Lockout.RecordFailure(acct, now)
	if err := s.Store.Accounts().UpdateAccount(ctx, acct.ID, f.Update); err != nil {
		return persistenceError("Failed to update user", err)
	}

	var shot []byte
	if f.Attempts >= 2 {
		shot = s.captureDeterrent(ctx, req)
	}

	device := s.Devices.Collect(req.Client)
	loc := s.Devices.CollectLocation(ctx, req.Client)
	alert := Alert{
		Type:           domain.NotificationFailedLogin,
		Account:        &acct,
		AttemptedEmail: acct.Email,
		FailedAttempts: f.Attempts,
		Device:         device,
		Location:       &loc,
		Screenshot:     shot,
	}
	if f.Locked {
		alert.Type = domain.NotificationAccountLockout
	}
	if _, err := s.Notifier.Emit(ctx, alert); err != nil {
		log.Error("failed to record failed login notification", "account_id", acct.ID, "error", err)
	}

	if f.Locked {
		log.Warn("account locked", "account_id", acct.ID, "attempts", f.Attempts, "until", f.LockedUntil)
		mins := int(s.Lockout.duration() / time.Minute)
		return &Error{
			Kind:             KindLockout,
			Message:          fmt.Sprintf("Too many failed attempts. Account locked for %d minutes.", mins),
			RemainingMinutes: mins,
		}
	}
	log.Warn("login rejected: wrong password", "account_id", acct.ID, "attempts", f.Attempts)
	return authError(fmt.Sprintf("Invalid password! %d attempts remaining.", f.Remaining))
}

func (s *AuthService) captureDeterrent(ctx context.Context, req LoginRequest) []byte {
	if s.Capture == nil || req.Camera == nil {
		return nil
	}
	if s.Consents == nil || !s.Consents.CameraGranted(ctx, req.ConsentToken) {
		return nil
	}
	shot, err := s.Capture.Capture(ctx, req.Camera)
	if err != nil {
		slogx.FromContext(ctx).Warn("deterrent capture failed", "error", err)
		return nil
	}
	return shot
}

// issueSession purges the account's stale sessions, stores a new one and
// starts its idle timer.
func (s *AuthService) issueSession(ctx context.Context, acct domain.Account, device domain.DeviceInfo, cc ClientContext, ttl time.Duration) (*SessionGrant, error) {
	now := s.now()
	if err := s.Store.Sessions().DeleteExpiredAccountSessions(ctx, acct.ID, now); err != nil {
		return nil, persistenceError("Failed to create session", err)
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, persistenceError("Failed to create session", err)
	}
	sess := domain.Session{
		ID:                idx.New().String(),
		AccountID:         acct.ID,
		TokenHash:         cryptox.FingerprintToken(token),
		DeviceFingerprint: device.Fingerprint,
		IPAddress:         cc.IP,
		UserAgent:         cc.UserAgent,
		ExpiresAt:         now.Add(ttl),
		CreatedAt:         now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return nil, persistenceError("Failed to create session", err)
	}

	if s.Timers != nil {
		s.Timers.StartFor(sess.TokenHash, acct.ID, acct.Timeout(), ttl)
	}
	return &SessionGrant{Account: acct, Token: token, ExpiresAt: sess.ExpiresAt, View: domain.ViewMain}, nil
}

// Logout stops the timer and deletes the session. Unknown tokens are not
// an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	hash := cryptox.FingerprintToken(token)
	if s.Timers != nil {
		s.Timers.Stop(hash)
	}
	if err := s.Store.Sessions().DeleteSession(ctx, hash); err != nil && !errors.Is(err, store.ErrNotFound) {
		return persistenceError("Failed to delete session", err)
	}
	slogx.FromContext(ctx).Info("logged out")
	return nil
}

// Authenticate resolves a session token to its account. Expired sessions
// are deleted on sight.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	sess, err := s.lookup(ctx, token)
	if err != nil {
		return "", err
	}
	return sess.AccountID, nil
}

func (s *AuthService) lookup(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrNoSession
	}
	hash := cryptox.FingerprintToken(token)
	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, hash)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	if sess.Expired(s.now()) {
		if err := s.Store.Sessions().DeleteSession(ctx, hash); err != nil && !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Error("failed to delete expired session", "error", err)
		}
		if s.Timers != nil {
			s.Timers.Stop(hash)
		}
		return domain.Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Session returns the live session behind token.
func (s *AuthService) Session(ctx context.Context, token string) (domain.Session, error) {
	return s.lookup(ctx, token)
}

// Current returns the account behind a session.
func (s *AuthService) Current(ctx context.Context, accountID string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrNoSession
	}
	if err != nil {
		return domain.Account{}, persistenceError("Failed to load user", err)
	}
	return acct, nil
}

// Resolve picks the view for a returning browser from its consent marker
// and session cookie.
func (s *AuthService) Resolve(ctx context.Context, consentToken, token string) (ResolveResult, error) {
	view, err := s.Consents.Check(ctx, consentToken)
	if err != nil {
		return ResolveResult{}, err
	}
	if view != domain.ViewAuth {
		return ResolveResult{View: view}, nil
	}
	if token == "" {
		return ResolveResult{View: domain.ViewAuth}, nil
	}

	hash := cryptox.FingerprintToken(token)
	if s.KV != nil {
		if _, err := s.KV.Take(ctx, kv.PrefixSessionExpired+hash); err == nil {
			return ResolveResult{View: domain.ViewSessionExpired}, nil
		} else if !errors.Is(err, kv.ErrNotFound) {
			slogx.FromContext(ctx).Error("failed to read expiry marker", "error", err)
		}
	}

	sess, err := s.lookup(ctx, token)
	if errors.Is(err, ErrSessionExpired) {
		return ResolveResult{View: domain.ViewSessionExpired}, nil
	}
	if errors.Is(err, ErrNoSession) {
		return ResolveResult{View: domain.ViewAuth}, nil
	}
	if err != nil {
		return ResolveResult{}, persistenceError("Failed to load session", err)
	}

	acct, err := s.Current(ctx, sess.AccountID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return ResolveResult{View: domain.ViewAuth}, nil
		}
		return ResolveResult{}, err
	}

	if s.Timers != nil && !s.Timers.Has(hash) {
		s.Timers.StartFor(hash, acct.ID, acct.Timeout(), sess.ExpiresAt.Sub(s.now()))
	}
	return ResolveResult{View: domain.ViewMain, Account: &acct}, nil
}

// ActivityResult reports the idle deadline after activity.
type ActivityResult struct {
	Remaining time.Duration
	ExpiresAt time.Time
}

// Activity resets the idle timer and moves the stored expiry to the new
// deadline, so the store, the timer and the cookie agree.
func (s *AuthService) Activity(ctx context.Context, token string) (ActivityResult, error) {
	sess, err := s.lookup(ctx, token)
	if err != nil {
		return ActivityResult{}, err
	}
	acct, err := s.Current(ctx, sess.AccountID)
	if err != nil {
		return ActivityResult{}, err
	}

	if s.Timers != nil && !s.Timers.Activity(sess.TokenHash) {
		s.Timers.Start(sess.TokenHash, acct.ID, acct.Timeout())
	}

	next := s.now().Add(acct.Timeout())
	if next.After(sess.ExpiresAt) {
		if err := s.Store.Sessions().UpdateSessionExpiry(ctx, sess.TokenHash, next); err != nil {
			return ActivityResult{}, persistenceError("Failed to update session", err)
		}
	} else {
		next = sess.ExpiresAt
	}

	left := acct.Timeout()
	if s.Timers != nil {
		if l, ok := s.Timers.Remaining(sess.TokenHash); ok {
			left = l
		}
	}
	return ActivityResult{Remaining: left, ExpiresAt: next}, nil
}

// HandleExpiry is the TimerRegistry callback: the session is deleted and
// the browser is shown the expired screen on its next visit.
func (s *AuthService) HandleExpiry(key, accountID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log := slogx.FromContext(ctx).With("account_id", accountID)

	if err := s.Store.Sessions().DeleteSession(ctx, key); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to delete idle session", "error", err)
	}
	if s.KV != nil {
		if err := s.KV.Set(ctx, kv.PrefixSessionExpired+key, "1", expiredMarkerTTL); err != nil {
			log.Error("failed to store expiry marker", "error", err)
		}
	}
	log.Warn("session expired after inactivity")
}
