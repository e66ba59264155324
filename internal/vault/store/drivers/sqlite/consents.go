package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
)

type consentsRepo struct {
	q dbtx
}

func (r *consentsRepo) CreateConsent(ctx context.Context, c domain.Consent) error {
	perms, err := encodeJSON(c.Permissions)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO consents (id, session_id, accepted, permissions, time_to_decision, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SessionID, boolToInt(c.Accepted), perms, c.TimeToDecision.Milliseconds(),
		c.IPAddress, c.UserAgent, toMillis(c.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *consentsRepo) GetConsentBySessionID(ctx context.Context, sessionID string) (domain.Consent, error) {
	var (
		c                   domain.Consent
		accepted            int
		perms               string
		decisionMS, created int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, session_id, accepted, permissions, time_to_decision, ip_address, user_agent, created_at
		FROM consents WHERE session_id = ?`, sessionID,
	).Scan(&c.ID, &c.SessionID, &accepted, &perms, &decisionMS, &c.IPAddress, &c.UserAgent, &created)
	if err != nil {
		return domain.Consent{}, mapNotFound(err)
	}

	if err := json.Unmarshal([]byte(perms), &c.Permissions); err != nil {
		return domain.Consent{}, fmt.Errorf("decode permissions: %w", err)
	}
	c.Accepted = accepted != 0
	c.TimeToDecision = time.Duration(decisionMS) * time.Millisecond
	c.CreatedAt = fromMillis(created)
	return c, nil
}
