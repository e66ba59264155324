package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
)

type securityEventsRepo struct {
	q dbtx
}

func (r *securityEventsRepo) CreateSecurityEvent(ctx context.Context, e domain.SecurityEvent) error {
	device, err := encodeJSON(e.Device)
	if err != nil {
		return err
	}
	location, err := encodeLocation(e.Location)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO security_events (id, type, title, message, severity, device_info, location_info,
			attempted_email, failed_attempts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Type), e.Title, e.Message, e.Severity.String(), device, location,
		e.AttemptedEmail, e.FailedAttempts, toMillis(e.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *securityEventsRepo) ListSecurityEventsByEmail(ctx context.Context, email string, limit int) ([]domain.SecurityEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, type, title, message, severity, device_info, location_info,
			attempted_email, failed_attempts, created_at
		FROM security_events
		WHERE attempted_email = ? COLLATE NOCASE
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SecurityEvent{}
	for rows.Next() {
		var (
			e         domain.SecurityEvent
			typ, sev  string
			device    string
			location  sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &typ, &e.Title, &e.Message, &sev, &device, &location,
			&e.AttemptedEmail, &e.FailedAttempts, &createdAt); err != nil {
			return nil, err
		}
		e.Type = domain.NotificationType(typ)
		if e.Severity, err = domain.ParseSeverity(sev); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(device), &e.Device); err != nil {
			return nil, fmt.Errorf("decode device_info: %w", err)
		}
		if e.Location, err = decodeLocation(location); err != nil {
			return nil, err
		}
		e.CreatedAt = fromMillis(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *securityEventsRepo) DeleteSecurityEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM security_events WHERE created_at < ?`, toMillis(before))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
