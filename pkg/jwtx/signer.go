package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLen = 32

// HS256Signer signs and verifies consent markers with a shared secret.
type HS256Signer struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewHS256Signer returns a signer. The secret must be at least 32 bytes.
func NewHS256Signer(secret []byte, issuer string) (*HS256Signer, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("jwtx: secret must be at least %d bytes", minSecretLen)
	}
	return &HS256Signer{
		secret: secret,
		issuer: issuer,
		leeway: 30 * time.Second,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source, for tests.
func (s *HS256Signer) WithClock(now func() time.Time) *HS256Signer {
	s.now = now
	return s
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Issue signs a marker for sessionID valid for ttl.
func (s *HS256Signer) Issue(sessionID string, accepted bool, ttl time.Duration) (string, time.Time, error) {
	now := s.now().UTC()
	claims := NewConsentClaims(sessionID, accepted, s.issuer, ttl, now)
	tok, err := s.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, claims.ExpiresAt.Time, nil
}

// Sign produces a compact JWS for claims.
func (s *HS256Signer) Sign(claims ConsentClaims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses token, checks the signature, issuer and validity window, and
// returns its claims.
func (s *HS256Signer) Verify(token string) (ConsentClaims, error) {
	var claims ConsentClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrAlgMismatch
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return ConsentClaims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return ConsentClaims{}, ErrInvalidSig
		default:
			return ConsentClaims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return ConsentClaims{}, err
	}
	if err := claims.ValidateExpiryAt(s.now().UTC(), s.leeway); err != nil {
		return ConsentClaims{}, err
	}
	if claims.Subject == "" {
		return ConsentClaims{}, ErrInvalidClaim
	}
	return claims, nil
}
