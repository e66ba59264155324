package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// DefaultResetTTL is both the TOTP period and the reset token lifetime.
const DefaultResetTTL = 15 * time.Minute

// ResetDelivery sends a reset code to the account holder.
type ResetDelivery interface {
	DeliverResetCode(ctx context.Context, email, code string, expiresAt time.Time) error
}

// LogDelivery writes reset codes to the log. Only for development.
type LogDelivery struct {
	Logger *slog.Logger
}

func (d LogDelivery) DeliverResetCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	log := d.Logger
	if log == nil {
		log = slogx.FromContext(ctx)
	}
	log.Info("password reset code issued", "email", email, "reset_code", code, "expires_at", expiresAt)
	return nil
}

// ProfileService edits account settings and runs password changes and
// resets.
type ProfileService struct {
	Store     store.Store
	Passwords PasswordVerifier
	Timers    *TimerRegistry
	Notifier  *NotificationEmitter
	Delivery  ResetDelivery
	Clock     Clock
	ResetTTL  time.Duration
	Issuer    string
}

// ProfileUpdate is a partial profile edit. Empty strings keep the current
// value.
type ProfileUpdate struct {
	Username       string
	Email          string
	SessionTimeout int
}

func (s *ProfileService) verifier() PasswordVerifier {
	if s.Passwords == nil {
		return defaultVerifier
	}
	return s.Passwords
}

func (s *ProfileService) resetTTL() time.Duration {
	if s.ResetTTL <= 0 {
		return DefaultResetTTL
	}
	return s.ResetTTL
}

func (s *ProfileService) totpOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(s.resetTTL() / time.Second),
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// Update applies a profile edit. A changed timeout restarts every live
// timer of the account with the new value.
func (s *ProfileService) Update(ctx context.Context, accountID string, in ProfileUpdate) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.Account{}, lookupError(err)
	}

	var u domain.AccountUpdate
	if name := strings.TrimSpace(in.Username); name != "" && name != acct.Username {
		u.Username = &name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" && email != acct.Email {
		u.Email = &email
	}
	if in.SessionTimeout != 0 && in.SessionTimeout != acct.SessionTimeout {
		if !domain.ValidSessionTimeout(in.SessionTimeout) {
			return domain.Account{}, validationError("Session timeout must be 5, 10 or 15 minutes")
		}
		u.SessionTimeout = &in.SessionTimeout
	}
	if u.Empty() {
		return acct, nil
	}

	if err := s.Store.Accounts().UpdateAccount(ctx, accountID, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, validationError("User with this email already exists")
		}
		return domain.Account{}, persistenceError("Failed to update user", err)
	}

	if u.SessionTimeout != nil {
		timeout := time.Duration(*u.SessionTimeout) * time.Minute
		now := nowFrom(s.Clock)
		moved, err := s.Store.Sessions().ResetAccountSessionExpiry(ctx, accountID, now, now.Add(timeout))
		if err != nil {
			return domain.Account{}, persistenceError("Failed to update sessions", err)
		}
		restarted := 0
		if s.Timers != nil {
			restarted = s.Timers.SetTimeout(accountID, timeout)
		}
		slogx.FromContext(ctx).Info("session timeout changed",
			"minutes", *u.SessionTimeout, "sessions_moved", moved, "timers_restarted", restarted)
	}

	updated, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.Account{}, lookupError(err)
	}
	return updated, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *ProfileService) ChangePassword(ctx context.Context, accountID, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return validationError("All password fields are required!")
	}

	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return lookupError(err)
	}
	if !s.verifier().Verify(current, acct.PasswordHash) {
		slogx.FromContext(ctx).Warn("password change rejected: wrong current password", "account_id", accountID)
		return authError("Current password is incorrect!")
	}
	if next != confirm {
		return validationError("New passwords do not match!")
	}
	if res := ValidatePassword(next); !res.OK {
		return validationError(res.Reason)
	}

	hash, err := s.verifier().Hash(next)
	if err != nil {
		return persistenceError("Failed to update password", err)
	}
	if err := s.Store.Accounts().UpdateAccount(ctx, accountID, domain.AccountUpdate{PasswordHash: &hash}); err != nil {
		return persistenceError("Failed to update password", err)
	}

	s.notify(ctx, domain.NotificationPasswordChange, acct)
	return nil
}

// RequestReset issues a reset code for email. Unknown emails get the same
// outcome so account existence is not revealed.
func (s *ProfileService) RequestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return validationError("Email is required!")
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return persistenceError("Failed to request password reset", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer(),
		AccountName: acct.Email,
		Period:      uint(s.resetTTL() / time.Second),
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return persistenceError("Failed to request password reset", fmt.Errorf("generate reset secret: %w", err))
	}

	now := nowFrom(s.Clock)
	code, err := totp.GenerateCodeCustom(key.Secret(), now, s.totpOpts())
	if err != nil {
		return persistenceError("Failed to request password reset", fmt.Errorf("generate reset code: %w", err))
	}

	secret := key.Secret()
	expires := now.Add(s.resetTTL())
	if err := s.Store.Accounts().UpdateAccount(ctx, acct.ID, domain.AccountUpdate{
		ResetToken:       &secret,
		ResetTokenExpiry: &expires,
	}); err != nil {
		return persistenceError("Failed to request password reset", err)
	}

	if s.Delivery != nil {
		if err := s.Delivery.DeliverResetCode(ctx, acct.Email, code, expires); err != nil {
			log.Error("failed to deliver reset code", "account_id", acct.ID, "error", err)
		}
	}
	log.Info("password reset issued", "account_id", acct.ID)
	return nil
}

// ResetConfirm carries the reset form.
type ResetConfirm struct {
	Email           string
	Code            string
	NewPassword     string
	ConfirmPassword string
}

// ConfirmReset sets a new password if the code is valid. The reset token
// and any lock are cleared and every session of the account ends.
func (s *ProfileService) ConfirmReset(ctx context.Context, in ResetConfirm) error {
	log := slogx.FromContext(ctx)
	invalid := authError("Invalid or expired reset code")

	email := strings.ToLower(strings.TrimSpace(in.Email))
	code := strings.TrimSpace(in.Code)
	if email == "" || code == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return validationError("All fields are required!")
	}
	if in.NewPassword != in.ConfirmPassword {
		return validationError("Passwords do not match!")
	}
	if res := ValidatePassword(in.NewPassword); !res.OK {
		return validationError(res.Reason)
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return invalid
	}
	if err != nil {
		return persistenceError("Failed to reset password", err)
	}

	now := nowFrom(s.Clock)
	if acct.ResetToken == nil || acct.ResetTokenExpiry == nil || !now.Before(*acct.ResetTokenExpiry) {
		return invalid
	}
	ok, err := totp.ValidateCustom(code, *acct.ResetToken, now, s.totpOpts())
	if err != nil || !ok {
		log.Warn("password reset rejected: bad code", "account_id", acct.ID)
		return invalid
	}

	hash, err := s.verifier().Hash(in.NewPassword)
	if err != nil {
		return persistenceError("Failed to reset password", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		zero := 0
		if err := tx.Accounts().UpdateAccount(ctx, acct.ID, domain.AccountUpdate{
			PasswordHash:    &hash,
			FailedAttempts:  &zero,
			ClearLock:       true,
			ClearResetToken: true,
		}); err != nil {
			return err
		}
		return tx.Sessions().DeleteAccountSessions(ctx, acct.ID)
	})
	if err != nil {
		return persistenceError("Failed to reset password", err)
	}
	if s.Timers != nil {
		s.Timers.StopAccount(acct.ID)
	}

	s.notify(ctx, domain.NotificationPasswordReset, acct)
	log.Info("password reset completed", "account_id", acct.ID)
	return nil
}

func (s *ProfileService) issuer() string {
	if s.Issuer == "" {
		return "vault"
	}
	return s.Issuer
}

func (s *ProfileService) notify(ctx context.Context, typ domain.NotificationType, acct domain.Account) {
	if s.Notifier == nil {
		return
	}
	if _, err := s.Notifier.Emit(ctx, Alert{Type: typ, Account: &acct}); err != nil {
		slogx.FromContext(ctx).Error("failed to record account notification", "type", typ, "error", err)
	}
}

// lookupError maps a failed account read for a signed-in caller.
func lookupError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError("User not found", err)
	}
	return persistenceError("Failed to load user", err)
}
