package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
)

type entriesRepo struct {
	q dbtx
}

const entryColumns = `id, account_id, email, sealed_password, description, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (domain.PasswordEntry, error) {
	var (
		e                    domain.PasswordEntry
		createdAt, updatedAt int64
	)
	if err := row.Scan(&e.ID, &e.AccountID, &e.Email, &e.SealedPassword, &e.Description, &createdAt, &updatedAt); err != nil {
		return domain.PasswordEntry{}, err
	}
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	return e, nil
}

func (r *entriesRepo) CreateEntry(ctx context.Context, e domain.PasswordEntry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO password_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AccountID, e.Email, e.SealedPassword, e.Description,
		toMillis(e.CreatedAt), toMillis(e.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *entriesRepo) GetEntry(ctx context.Context, accountID, id string) (domain.PasswordEntry, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM password_entries WHERE id = ? AND account_id = ?`, id, accountID)
	e, err := scanEntry(row)
	if err != nil {
		return domain.PasswordEntry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *entriesRepo) ListEntries(ctx context.Context, f store.EntryFilter) ([]domain.PasswordEntry, int, error) {
	where := `account_id = ?`
	args := []any{f.AccountID}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		where += ` AND (lower(email) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\')`
		args = append(args, like, like)
	}

	var total int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM password_entries WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM password_entries WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, append(args, limit, max(f.Offset, 0))...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []domain.PasswordEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *entriesRepo) UpdateEntry(ctx context.Context, e domain.PasswordEntry) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE password_entries
		SET email = ?, sealed_password = ?, description = ?, updated_at = ?
		WHERE id = ? AND account_id = ?`,
		e.Email, e.SealedPassword, e.Description, toMillis(e.UpdatedAt), e.ID, e.AccountID,
	)
	return requireOne(res, err)
}

func (r *entriesRepo) DeleteEntry(ctx context.Context, accountID, id string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM password_entries WHERE id = ? AND account_id = ?`, id, accountID)
	return requireOne(res, err)
}
