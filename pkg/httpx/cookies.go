package httpx

import (
	"net/http"
	"time"
)

const (
	SessionCookieName = "session-token"
	ConsentCookieName = "vault-consent"
)

// CookieConfig controls attributes shared by every cookie the API sets.
type CookieConfig struct {
	Secure bool
}

// Session builds the session cookie, expiring with the session.
func (c CookieConfig) Session(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSession writes the session cookie, expiring with the session.
func (c CookieConfig) SetSession(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, c.Session(token, expiresAt))
}

// ClearSession expires the session cookie immediately.
func (c CookieConfig) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetConsent writes the signed consent marker for the browser session.
func (c CookieConfig) SetConsent(w http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     ConsentCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionCookie returns the raw session token, or "".
func SessionCookie(r *http.Request) string {
	return cookieValue(r, SessionCookieName)
}

// ConsentCookie returns the signed consent marker, or "".
func ConsentCookie(r *http.Request) string {
	return cookieValue(r, ConsentCookieName)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
