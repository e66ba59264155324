package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultConsentTTL bounds how long a browser may keep its consent marker
// before the gate is shown again.
const DefaultConsentTTL = 30 * 24 * time.Hour

// ConsentClaims bind a browser to the consent record it created. The
// subject is the consent session id; the server still looks the record up
// so a forged or stale marker can never skip the gate on its own.
type ConsentClaims struct {
	jwt.RegisteredClaims

	// Accepted mirrors the stored decision at the time of signing.
	Accepted bool `json:"acc"`
}

// NewConsentClaims builds claims for sessionID issued at now.
func NewConsentClaims(sessionID string, accepted bool, issuer string, ttl time.Duration, now time.Time) ConsentClaims {
	return ConsentClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Accepted: accepted,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *ConsentClaims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryAt checks exp and nbf against now, allowing leeway for skew.
func (c *ConsentClaims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
