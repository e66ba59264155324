package domain

import (
	"slices"
	"time"
)

const (
	// MaxFailedAttempts is the number of consecutive wrong passwords that
	// locks an account.
	MaxFailedAttempts = 3

	// LockoutDuration is how long a locked account rejects logins.
	LockoutDuration = 15 * time.Minute

	// DefaultSessionTimeout is the idle timeout in minutes for new accounts.
	DefaultSessionTimeout = 5

	// SignupSessionTTL is the expiry of the session issued at signup.
	SignupSessionTTL = 5 * time.Minute
)

// SessionTimeoutOptions are the idle timeouts, in minutes, a user may pick.
var SessionTimeoutOptions = []int{5, 10, 15}

// ValidSessionTimeout reports whether minutes is a selectable timeout.
func ValidSessionTimeout(minutes int) bool {
	return slices.Contains(SessionTimeoutOptions, minutes)
}

type Account struct {
	ID                string
	Username          string
	Email             string // always lowercased
	PasswordHash      string // argon2id PHC string
	SessionTimeout    int    // minutes
	FailedAttempts    int
	LockedUntil       *time.Time
	DeviceFingerprint string
	ResetToken        *string // TOTP secret for a pending reset
	ResetTokenExpiry  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Timeout returns the configured idle timeout as a duration.
func (a Account) Timeout() time.Duration {
	return time.Duration(a.SessionTimeout) * time.Minute
}

// AccountUpdate is a partial update. Nil fields are left unchanged; the
// Clear flags null the named columns.
type AccountUpdate struct {
	Username          *string
	Email             *string
	PasswordHash      *string
	SessionTimeout    *int
	FailedAttempts    *int
	LockedUntil       *time.Time
	DeviceFingerprint *string
	ResetToken        *string
	ResetTokenExpiry  *time.Time

	ClearLock       bool
	ClearResetToken bool
}

// Empty reports whether the update would change nothing.
func (u AccountUpdate) Empty() bool {
	return u == AccountUpdate{}
}
