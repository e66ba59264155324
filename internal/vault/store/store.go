package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so a Tx-scoped store can hand out the same repos bound to
// the transaction.
type Store interface {
	Accounts() Accounts
	Sessions() Sessions
	Notifications() Notifications
	SecurityEvents() SecurityEvents
	Consents() Consents
	Entries() Entries

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account. Returns ErrAlreadyExists when the
	// email is taken, compared case-insensitively.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail matches case-insensitively.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// UpdateAccount applies a partial update and bumps updated_at.
	UpdateAccount(ctx context.Context, id string, u domain.AccountUpdate) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns a session whether or not it has expired;
	// callers decide what expiry means.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	UpdateSessionExpiry(ctx context.Context, tokenHash string, expiresAt time.Time) error

	// ResetAccountSessionExpiry moves every session of the account still
	// live at now to expiresAt.
	ResetAccountSessionExpiry(ctx context.Context, accountID string, now, expiresAt time.Time) (int64, error)

	DeleteSession(ctx context.Context, tokenHash string) error
	DeleteAccountSessions(ctx context.Context, accountID string) error

	// DeleteExpiredAccountSessions purges one account's stale sessions.
	DeleteExpiredAccountSessions(ctx context.Context, accountID string, now time.Time) error

	// DeleteExpiredSessions is housekeeping across all accounts.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.SecurityNotification) error

	// ListNotifications returns the account's notifications newest first.
	ListNotifications(ctx context.Context, accountID string) ([]domain.SecurityNotification, error)

	GetNotification(ctx context.Context, accountID, id string) (domain.SecurityNotification, error)

	// MarkNotificationRead returns ErrNotFound if the account does not own id.
	MarkNotificationRead(ctx context.Context, accountID, id string) error

	MarkAllNotificationsRead(ctx context.Context, accountID string) (int64, error)

	// DeleteNotification returns ErrNotFound if the account does not own id.
	DeleteNotification(ctx context.Context, accountID, id string) error

	CountUnreadNotifications(ctx context.Context, accountID string) (int, error)
}

// SecurityEvents holds attempts that have no owning account.
type SecurityEvents interface {
	CreateSecurityEvent(ctx context.Context, e domain.SecurityEvent) error

	// ListSecurityEventsByEmail returns events for an attempted email, newest
	// first, matched case-insensitively.
	ListSecurityEventsByEmail(ctx context.Context, email string, limit int) ([]domain.SecurityEvent, error)

	DeleteSecurityEventsBefore(ctx context.Context, before time.Time) (int64, error)
}

type Consents interface {
	// CreateConsent returns ErrAlreadyExists if the session already decided.
	CreateConsent(ctx context.Context, c domain.Consent) error

	GetConsentBySessionID(ctx context.Context, sessionID string) (domain.Consent, error)
}

// EntryFilter selects a page of one account's entries.
type EntryFilter struct {
	AccountID string
	Query     string // matched case-insensitively against email and description
	Limit     int
	Offset    int
}

type Entries interface {
	// CreateEntry stores e; only SealedPassword is persisted, never Password.
	CreateEntry(ctx context.Context, e domain.PasswordEntry) error

	GetEntry(ctx context.Context, accountID, id string) (domain.PasswordEntry, error)

	// ListEntries returns the page newest first and the total match count.
	ListEntries(ctx context.Context, f EntryFilter) ([]domain.PasswordEntry, int, error)

	// UpdateEntry overwrites email, sealed password and description.
	UpdateEntry(ctx context.Context, e domain.PasswordEntry) error

	DeleteEntry(ctx context.Context, accountID, id string) error
}
