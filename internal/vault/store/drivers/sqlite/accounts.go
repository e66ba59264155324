package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
)

type accountsRepo struct {
	q dbtx
}

const accountColumns = `id, username, email, password_hash, session_timeout, failed_attempts,
	locked_until, device_fingerprint, reset_token, reset_token_expiry, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var (
		a                     domain.Account
		lockedUntil, resetExp sql.NullInt64
		resetToken            sql.NullString
		createdAt, updatedAt  int64
	)
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.SessionTimeout, &a.FailedAttempts,
		&lockedUntil, &a.DeviceFingerprint, &resetToken, &resetExp, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	a.LockedUntil = mapNullTimePtr(lockedUntil)
	a.ResetToken = mapNullStringPtr(resetToken)
	a.ResetTokenExpiry = mapNullTimePtr(resetExp)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, strings.ToLower(a.Email), a.PasswordHash, a.SessionTimeout, a.FailedAttempts,
		mapOptionalTime(a.LockedUntil), a.DeviceFingerprint, mapOptionalString(a.ResetToken),
		mapOptionalTime(a.ResetTokenExpiry), toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ? COLLATE NOCASE`,
		strings.TrimSpace(email),
	)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) UpdateAccount(ctx context.Context, id string, u domain.AccountUpdate) error {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if u.Username != nil {
		set("username", *u.Username)
	}
	if u.Email != nil {
		set("email", strings.ToLower(*u.Email))
	}
	if u.PasswordHash != nil {
		set("password_hash", *u.PasswordHash)
	}
	if u.SessionTimeout != nil {
		set("session_timeout", *u.SessionTimeout)
	}
	if u.FailedAttempts != nil {
		set("failed_attempts", *u.FailedAttempts)
	}
	switch {
	case u.ClearLock:
		set("locked_until", nil)
	case u.LockedUntil != nil:
		set("locked_until", toMillis(*u.LockedUntil))
	}
	if u.DeviceFingerprint != nil {
		set("device_fingerprint", *u.DeviceFingerprint)
	}
	switch {
	case u.ClearResetToken:
		set("reset_token", nil)
		set("reset_token_expiry", nil)
	default:
		if u.ResetToken != nil {
			set("reset_token", *u.ResetToken)
		}
		if u.ResetTokenExpiry != nil {
			set("reset_token_expiry", toMillis(*u.ResetTokenExpiry))
		}
	}

	set("updated_at", toMillis(time.Now()))
	args = append(args, id)

	res, err := r.q.ExecContext(ctx,
		`UPDATE accounts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return requireOne(res, mapConstraint(err))
}

var _ store.Accounts = (*accountsRepo)(nil)
