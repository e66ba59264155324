package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

// ConsentHandler records the browser's answer to the permission prompt.
type ConsentHandler struct {
	ConsentService *service.ConsentService
	Cookies        httpx.CookieConfig
}

// HandleAccept handles POST /v1/consent/accept
//
//	@Summary		Accept the consent prompt
//	@Description	Records consent when camera, location and storage were all granted and sets the signed consent cookie.
//	@Description	Anything less is not recorded and routes to the blocked view.
//	@Tags			Consent
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.ConsentRequest		true	"Permission decisions"
//	@Success		200		{object}	vaultsdk.ConsentResponse	"View to show next"
//	@Failure		400		{object}	vaultsdk.ErrorResponse		"Invalid request body"
//	@Failure		500		{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/consent/accept [post].
func (h *ConsentHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.ConsentService.Accept)
}

// HandleDecline handles POST /v1/consent/decline
//
//	@Summary		Decline the consent prompt
//	@Description	Records the refusal and routes to the blocked view.
//	@Tags			Consent
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.ConsentRequest		true	"Permission decisions"
//	@Success		200		{object}	vaultsdk.ConsentResponse	"Blocked view"
//	@Failure		400		{object}	vaultsdk.ErrorResponse		"Invalid request body"
//	@Failure		500		{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/consent/decline [post].
func (h *ConsentHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.ConsentService.Decline)
}

func (h *ConsentHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, service.ConsentProbe) (service.ConsentResult, error),
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req vaultsdk.ConsentRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	res, err := fn(ctx, service.ConsentProbe{
		Permissions: domain.Permissions{
			Camera:   req.Permissions.Camera,
			Location: req.Permissions.Location,
			Storage:  req.Permissions.Storage,
		},
		TimeToDecision: time.Duration(req.TimeToDecisionMs) * time.Millisecond,
		IPAddress:      httpx.ClientIP(r),
		UserAgent:      r.UserAgent(),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if res.Token != "" {
		h.Cookies.SetConsent(w, res.Token, res.ExpiresAt)
	}
	log.Info("consent decided", "view", res.View)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.ConsentResponse{Success: true, View: string(res.View)})
}

// RequireConsent rejects requests whose browser has not accepted the
// consent prompt.
func RequireConsent(consents *service.ConsentService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			view, err := consents.Check(r.Context(), httpx.ConsentCookie(r))
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			if view != domain.ViewAuth {
				slogx.FromContext(r.Context()).Info("request rejected: consent required", "path", r.URL.Path)
				httpx.WriteError(w, http.StatusForbidden, "Consent required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
