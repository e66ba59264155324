package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

func accountResponse(a domain.Account) vaultsdk.AccountResponse {
	return vaultsdk.AccountResponse{
		ID:             a.ID,
		Username:       a.Username,
		Email:          a.Email,
		SessionTimeout: a.SessionTimeout,
		CreatedAt:      a.CreatedAt,
	}
}

func authResponse(g *service.SessionGrant) vaultsdk.AuthResponse {
	return vaultsdk.AuthResponse{
		Success:   true,
		Message:   g.Message,
		View:      string(g.View),
		User:      accountResponse(g.Account),
		ExpiresAt: g.ExpiresAt,
	}
}

func challengeResponse(c *service.Challenge) *vaultsdk.ChallengeResponse {
	if c == nil {
		return nil
	}
	return &vaultsdk.ChallengeResponse{ID: c.ID, Prompt: c.Prompt}
}

func entryResponse(e domain.PasswordEntry) vaultsdk.EntryResponse {
	return vaultsdk.EntryResponse{
		ID:          e.ID,
		Email:       e.Email,
		Password:    e.Password,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func notificationResponse(n domain.SecurityNotification) vaultsdk.NotificationResponse {
	out := vaultsdk.NotificationResponse{
		ID:       n.ID,
		Type:     string(n.Type),
		Title:    n.Title,
		Message:  n.Message,
		Severity: n.Severity.String(),
		Device: vaultsdk.DeviceInfo{
			UserAgent:   n.Device.UserAgent,
			Platform:    n.Device.Platform,
			Language:    n.Device.Language,
			Screen:      n.Device.Screen,
			Timezone:    n.Device.Timezone,
			Fingerprint: n.Device.Fingerprint,
		},
		AttemptedEmail: n.AttemptedEmail,
		FailedAttempts: n.FailedAttempts,
		HasScreenshot:  len(n.Screenshot) > 0,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
	if n.Location != nil {
		out.Location = &vaultsdk.LocationInfo{
			IP:        n.Location.IP,
			Country:   n.Location.Country,
			City:      n.Location.City,
			Latitude:  n.Location.Latitude,
			Longitude: n.Location.Longitude,
		}
	}
	return out
}

// clientContext merges what the browser reported with what the request
// itself reveals. The address always comes from the connection.
func clientContext(r *http.Request, c vaultsdk.ClientInfo) service.ClientContext {
	ua := strings.TrimSpace(c.UserAgent)
	if ua == "" {
		ua = r.UserAgent()
	}
	lang := strings.TrimSpace(c.Language)
	if lang == "" {
		lang = r.Header.Get("Accept-Language")
	}
	return service.ClientContext{
		UserAgent: ua,
		Platform:  strings.TrimSpace(c.Platform),
		Language:  lang,
		Screen:    strings.TrimSpace(c.Screen),
		Timezone:  strings.TrimSpace(c.Timezone),
		IP:        httpx.ClientIP(r),
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

var errEmptyCapture = errors.New("empty capture")

// decodeCapture accepts raw base64 or a data URL.
func decodeCapture(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, errEmptyCapture
	}
	return b, nil
}
