package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/pkg/idx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
)

// Alert is the input to NotificationEmitter.Emit. A nil Account means the
// attempt targeted an email nobody owns.
type Alert struct {
	Type           domain.NotificationType
	Account        *domain.Account
	AttemptedEmail string
	FailedAttempts int
	Device         domain.DeviceInfo
	Location       *domain.LocationInfo
	Screenshot     []byte
}

// NotificationEmitter turns login and account events into persisted alerts.
type NotificationEmitter struct {
	Store store.Store
	Clock Clock
}

// Emit builds the notification for a and stores it. Alerts without an
// owning account are kept as security events and never touch accounts.
func (e *NotificationEmitter) Emit(ctx context.Context, a Alert) (domain.SecurityNotification, error) {
	n := Compose(a)
	n.ID = idx.New().String()
	n.CreatedAt = e.now()

	log := slogx.FromContext(ctx)

	if a.Account == nil {
		ev := domain.SecurityEvent{
			ID:             n.ID,
			Type:           n.Type,
			Title:          n.Title,
			Message:        n.Message,
			Severity:       n.Severity,
			Device:         n.Device,
			Location:       n.Location,
			AttemptedEmail: n.AttemptedEmail,
			FailedAttempts: n.FailedAttempts,
			CreatedAt:      n.CreatedAt,
		}
		if err := e.Store.SecurityEvents().CreateSecurityEvent(ctx, ev); err != nil {
			return n, fmt.Errorf("create security event: %w", err)
		}
		log.Warn("unowned security event recorded", "type", n.Type, "severity", n.Severity.String())
		return n, nil
	}

	n.AccountID = a.Account.ID
	if err := e.Store.Notifications().CreateNotification(ctx, n); err != nil {
		return n, fmt.Errorf("create notification: %w", err)
	}
	log.Warn("security notification emitted",
		"account_id", n.AccountID,
		"type", n.Type,
		"severity", n.Severity.String(),
		"screenshot", len(n.Screenshot) > 0,
	)
	return n, nil
}

func (e *NotificationEmitter) now() time.Time {
	return nowFrom(e.Clock)
}

// Compose fills in title, message and severity for a without persisting it.
func Compose(a Alert) domain.SecurityNotification {
	n := domain.SecurityNotification{
		Type:           a.Type,
		Device:         a.Device,
		Location:       a.Location,
		AttemptedEmail: a.AttemptedEmail,
		FailedAttempts: a.FailedAttempts,
		Screenshot:     a.Screenshot,
	}

	email := a.AttemptedEmail
	if a.Account != nil {
		email = a.Account.Email
		if n.AttemptedEmail == "" {
			n.AttemptedEmail = email
		}
	}

	switch a.Type {
	case domain.NotificationFailedLogin:
		n.Title = "Failed Login Attempt"
		if a.Account == nil {
			n.Message = "Someone tried to login with email: " + a.AttemptedEmail
			n.Severity = domain.SeverityMedium
			if n.FailedAttempts == 0 {
				n.FailedAttempts = 1
			}
			break
		}
		n.Message = fmt.Sprintf("Failed login attempt %d of %d for account %s.",
			a.FailedAttempts, domain.MaxFailedAttempts, email)
		n.Severity = domain.SeverityMedium
		if a.FailedAttempts >= 2 {
			n.Severity = domain.SeverityHigh
		}

	case domain.NotificationAccountLockout:
		n.Title = "Account Locked - Multiple Failed Attempts"
		n.Message = fmt.Sprintf("Account %s has been locked due to %d failed login attempts.",
			email, a.FailedAttempts)
		n.Severity = domain.SeverityCritical

	case domain.NotificationNewDevice:
		n.Title = "New Device Login"
		n.Message = fmt.Sprintf("Account %s was accessed from a new device.", email)
		n.Severity = domain.SeverityLow

	case domain.NotificationPasswordChange:
		n.Title = "Password Changed"
		n.Message = fmt.Sprintf("The password for account %s was changed.", email)
		n.Severity = domain.SeverityMedium

	case domain.NotificationPasswordReset:
		n.Title = "Password Reset"
		n.Message = fmt.Sprintf("The password for account %s was reset with a reset code.", email)
		n.Severity = domain.SeverityHigh

	default:
		n.Title = "Security Event"
		n.Message = fmt.Sprintf("Security event %s for account %s.", a.Type, email)
		n.Severity = domain.SeverityLow
	}
	return n
}
