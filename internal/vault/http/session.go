package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

// SessionHandler resolves the view for a returning browser and keeps its
// idle timer alive.
type SessionHandler struct {
	AuthService    *service.AuthService
	Timers         *service.TimerRegistry
	Cookies        httpx.CookieConfig
	AllowedOrigins []string
}

// HandleResolve handles GET /v1/session
//
//	@Summary		Resolve the current view
//	@Description	Returns consent when the prompt has not been accepted, auth when there is no live session,
//	@Description	session_expired once after an idle timeout, and main with the account otherwise.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	vaultsdk.SessionResponse	"View to show"
//	@Failure		500	{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	token := httpx.SessionCookie(r)

	res, err := h.AuthService.Resolve(r.Context(), httpx.ConsentCookie(r), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := vaultsdk.SessionResponse{Success: true, View: string(res.View)}
	switch {
	case res.Account != nil:
		acct := accountResponse(*res.Account)
		out.User = &acct
		if left, ok := h.Timers.Remaining(cryptox.FingerprintToken(token)); ok {
			out.RemainingSeconds = ceilSeconds(left.Seconds())
		}
	case token != "" && res.View != domain.ViewConsent:
		h.Cookies.ClearSession(w)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleActivity handles POST /v1/session/activity
//
//	@Summary		Report user activity
//	@Description	Resets the idle timer of the current session, extends its expiry and reissues the
//	@Description	session cookie with the new expiry. Websocket clients call this to refresh the cookie.
//	@Tags			Session
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	vaultsdk.ActivityResponse	"Seconds until the session expires"
//	@Failure		401	{object}	vaultsdk.ErrorResponse		"Not authenticated or session expired"
//	@Failure		500	{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/session/activity [post].
func (h *SessionHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	token := httpx.SessionToken(r.Context())
	res, err := h.AuthService.Activity(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) || errors.Is(err, service.ErrSessionExpired) {
			h.Cookies.ClearSession(w)
		}
		writeServiceError(w, r, err)
		return
	}
	h.Cookies.SetSession(w, token, res.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.ActivityResponse{
		Success:          true,
		RemainingSeconds: ceilSeconds(res.Remaining.Seconds()),
	})
}

func ceilSeconds(s float64) int {
	n := int(s)
	if float64(n) < s {
		n++
	}
	return n
}
