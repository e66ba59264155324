package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
)

type notificationsRepo struct {
	q dbtx
}

const notificationColumns = `id, account_id, type, title, message, severity, device_info, location_info,
	attempted_email, failed_attempts, screenshot, read, created_at`

func scanNotification(row interface{ Scan(...any) error }) (domain.SecurityNotification, error) {
	var (
		n          domain.SecurityNotification
		typ, sev   string
		device     string
		location   sql.NullString
		read       int
		createdAt  int64
		screenshot []byte
	)
	err := row.Scan(&n.ID, &n.AccountID, &typ, &n.Title, &n.Message, &sev, &device, &location,
		&n.AttemptedEmail, &n.FailedAttempts, &screenshot, &read, &createdAt)
	if err != nil {
		return domain.SecurityNotification{}, err
	}

	n.Type = domain.NotificationType(typ)
	if n.Severity, err = domain.ParseSeverity(sev); err != nil {
		return domain.SecurityNotification{}, err
	}
	if err := json.Unmarshal([]byte(device), &n.Device); err != nil {
		return domain.SecurityNotification{}, fmt.Errorf("decode device_info: %w", err)
	}
	if n.Location, err = decodeLocation(location); err != nil {
		return domain.SecurityNotification{}, err
	}
	n.Screenshot = screenshot
	n.Read = read != 0
	n.CreatedAt = fromMillis(createdAt)
	return n, nil
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.SecurityNotification) error {
	device, err := encodeJSON(n.Device)
	if err != nil {
		return err
	}
	location, err := encodeLocation(n.Location)
	if err != nil {
		return err
	}

	var screenshot any
	if len(n.Screenshot) > 0 {
		screenshot = n.Screenshot
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO security_notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.AccountID, string(n.Type), n.Title, n.Message, n.Severity.String(), device, location,
		n.AttemptedEmail, n.FailedAttempts, screenshot, boolToInt(n.Read), toMillis(n.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) ListNotifications(ctx context.Context, accountID string) ([]domain.SecurityNotification, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+notificationColumns+` FROM security_notifications
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SecurityNotification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) GetNotification(ctx context.Context, accountID, id string) (domain.SecurityNotification, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM security_notifications WHERE id = ? AND account_id = ?`,
		id, accountID)
	n, err := scanNotification(row)
	if err != nil {
		return domain.SecurityNotification{}, mapNotFound(err)
	}
	return n, nil
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, accountID, id string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE security_notifications SET read = 1 WHERE id = ? AND account_id = ?`, id, accountID)
	return requireOne(res, err)
}

func (r *notificationsRepo) MarkAllNotificationsRead(ctx context.Context, accountID string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE security_notifications SET read = 1 WHERE account_id = ? AND read = 0`, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationsRepo) DeleteNotification(ctx context.Context, accountID, id string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM security_notifications WHERE id = ? AND account_id = ?`, id, accountID)
	return requireOne(res, err)
}

func (r *notificationsRepo) CountUnreadNotifications(ctx context.Context, accountID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM security_notifications WHERE account_id = ? AND read = 0`, accountID,
	).Scan(&n)
	return n, err
}
