package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
)

type sessionsRepo struct {
	q dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sessions (id, account_id, token_hash, device_fingerprint, ip_address, user_agent, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.AccountID, s.TokenHash, s.DeviceFingerprint, s.IPAddress, s.UserAgent,
		toMillis(s.ExpiresAt), toMillis(s.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	var (
		s                    domain.Session
		expiresAt, createdAt int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, account_id, token_hash, device_fingerprint, ip_address, user_agent, expires_at, created_at
		FROM sessions WHERE token_hash = ?`, tokenHash,
	).Scan(&s.ID, &s.AccountID, &s.TokenHash, &s.DeviceFingerprint, &s.IPAddress, &s.UserAgent, &expiresAt, &createdAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.ExpiresAt = fromMillis(expiresAt)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}

func (r *sessionsRepo) UpdateSessionExpiry(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET expires_at = ? WHERE token_hash = ?`, toMillis(expiresAt), tokenHash)
	return requireOne(res, err)
}

func (r *sessionsRepo) ResetAccountSessionExpiry(ctx context.Context, accountID string, now, expiresAt time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET expires_at = ? WHERE account_id = ? AND expires_at > ?`,
		toMillis(expiresAt), accountID, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, tokenHash string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *sessionsRepo) DeleteAccountSessions(ctx context.Context, accountID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE account_id = ?`, accountID)
	return err
}

func (r *sessionsRepo) DeleteExpiredAccountSessions(ctx context.Context, accountID string, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM sessions WHERE account_id = ? AND expires_at <= ?`, accountID, toMillis(now))
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
