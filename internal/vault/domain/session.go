package domain

import "time"

// Session is a live authenticated context. Only the SHA-256 fingerprint of
// the token is stored; the raw token lives in the client's cookie.
type Session struct {
	ID                string
	AccountID         string
	TokenHash         string
	DeviceFingerprint string
	IPAddress         string
	UserAgent         string
	ExpiresAt         time.Time
	CreatedAt         time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
