package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/pkg/idx"
	"github.com/aussiebroadwan/vault/pkg/jwtx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
	"github.com/google/uuid"
)

// ConsentProbe is the browser's answer to the permission prompt.
type ConsentProbe struct {
	Permissions    domain.Permissions
	TimeToDecision time.Duration
	IPAddress      string
	UserAgent      string
}

// ConsentResult tells the client where to go and, when a record was made,
// the signed marker to keep.
type ConsentResult struct {
	View      domain.View
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// ConsentService gates authentication behind the permission prompt. The
// browser session id lives in a signed cookie; the decision lives in the
// store.
type ConsentService struct {
	Store  store.Store
	Signer *jwtx.HS256Signer
	Clock  Clock
	TTL    time.Duration
}

func (s *ConsentService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultConsentTTL
	}
	return s.TTL
}

// Lookup returns the stored decision for a consent marker. A missing,
// tampered or expired marker reports ErrNotFound.
func (s *ConsentService) Lookup(ctx context.Context, token string) (domain.Consent, error) {
	if token == "" {
		return domain.Consent{}, ErrNotFound
	}
	claims, err := s.Signer.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("consent marker rejected", "error", err)
		return domain.Consent{}, ErrNotFound
	}
	c, err := s.Store.Consents().GetConsentBySessionID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Consent{}, ErrNotFound
		}
		return domain.Consent{}, persistenceError("Failed to load consent", err)
	}
	return c, nil
}

// Check returns Auth when the marker's session already accepted, otherwise
// Consent so the prompt is shown again.
func (s *ConsentService) Check(ctx context.Context, token string) (domain.View, error) {
	c, err := s.Lookup(ctx, token)
	switch {
	case errors.Is(err, ErrNotFound):
		return domain.ViewConsent, nil
	case err != nil:
		return "", err
	case !c.Accepted:
		return domain.ViewConsent, nil
	}
	return domain.ViewAuth, nil
}

// CameraGranted reports whether the marker's session allowed the camera.
func (s *ConsentService) CameraGranted(ctx context.Context, token string) bool {
	c, err := s.Lookup(ctx, token)
	return err == nil && c.Accepted && c.Permissions.Camera
}

// Accept records consent when every permission was granted. Anything less
// routes to Blocked without a record.
func (s *ConsentService) Accept(ctx context.Context, p ConsentProbe) (ConsentResult, error) {
	if !p.Permissions.AllGranted() {
		slogx.FromContext(ctx).Warn("consent blocked: permissions missing",
			"camera", p.Permissions.Camera,
			"location", p.Permissions.Location,
			"storage", p.Permissions.Storage,
		)
		return ConsentResult{View: domain.ViewBlocked}, nil
	}
	return s.record(ctx, p, true, domain.ViewAuth)
}

// Decline records a refusal and routes to Blocked.
func (s *ConsentService) Decline(ctx context.Context, p ConsentProbe) (ConsentResult, error) {
	return s.record(ctx, p, false, domain.ViewBlocked)
}

func (s *ConsentService) record(ctx context.Context, p ConsentProbe, accepted bool, next domain.View) (ConsentResult, error) {
	now := nowFrom(s.Clock)
	c := domain.Consent{
		ID:             idx.New().String(),
		SessionID:      uuid.NewString(),
		Accepted:       accepted,
		Permissions:    p.Permissions,
		TimeToDecision: max(p.TimeToDecision, 0),
		IPAddress:      p.IPAddress,
		UserAgent:      p.UserAgent,
		CreatedAt:      now,
	}
	if err := s.Store.Consents().CreateConsent(ctx, c); err != nil {
		return ConsentResult{}, persistenceError("Failed to create consent", err)
	}

	token, exp, err := s.Signer.Issue(c.SessionID, accepted, s.ttl())
	if err != nil {
		return ConsentResult{}, persistenceError("Failed to create consent", err)
	}

	slogx.FromContext(ctx).Info("consent recorded", "accepted", accepted, "decision_ms", c.TimeToDecision.Milliseconds())
	return ConsentResult{View: next, SessionID: c.SessionID, Token: token, ExpiresAt: exp}, nil
}
