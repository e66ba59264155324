package http

import (
	"net/http"

	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

// ProfileHandler serves the signed-in account's profile.
type ProfileHandler struct {
	ProfileService *service.ProfileService
	AuthService    *service.AuthService
	Cookies        httpx.CookieConfig
}

// HandleGet handles GET /v1/profile
//
//	@Summary		Get the profile
//	@Tags			Profile
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	vaultsdk.ProfileResponse	"Signed-in account"
//	@Failure		401	{object}	vaultsdk.ErrorResponse		"Not authenticated"
//	@Failure		500	{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	acct, err := h.AuthService.Current(ctx, httpx.AccountID(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.ProfileResponse{Success: true, User: accountResponse(acct)})
}

// HandleUpdate handles PATCH /v1/profile
//
//	@Summary		Update the profile
//	@Description	Changes username, email or idle timeout. Empty fields are left unchanged.
//	@Description	A new timeout restarts the idle timer of every live session of the account.
//	@Description	The session cookie is reissued with the moved expiry.
//	@Tags			Profile
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.ProfileUpdateRequest	true	"Profile fields"
//	@Success		200		{object}	vaultsdk.ProfileResponse		"Updated account"
//	@Failure		400		{object}	vaultsdk.ErrorResponse			"Validation failed"
//	@Failure		401		{object}	vaultsdk.ErrorResponse			"Not authenticated"
//	@Failure		500		{object}	vaultsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/profile [patch].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vaultsdk.ProfileUpdateRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	acct, err := h.ProfileService.Update(ctx, httpx.AccountID(ctx), service.ProfileUpdate{
		Username:       req.Username,
		Email:          req.Email,
		SessionTimeout: req.SessionTimeout,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// A new timeout moves the session expiry, so the cookie follows it.
	token := httpx.SessionToken(ctx)
	if sess, err := h.AuthService.Session(ctx, token); err == nil {
		h.Cookies.SetSession(w, token, sess.ExpiresAt)
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.ProfileResponse{Success: true, User: accountResponse(acct)})
}

// HandleChangePassword handles POST /v1/profile/password
//
//	@Summary		Change the password
//	@Description	Verifies the current password and applies the password policy to the new one.
//	@Tags			Profile
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	vaultsdk.MessageResponse		"Password changed"
//	@Failure		400		{object}	vaultsdk.ErrorResponse			"Validation failed"
//	@Failure		401		{object}	vaultsdk.ErrorResponse			"Not authenticated or wrong current password"
//	@Failure		500		{object}	vaultsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/profile/password [post].
func (h *ProfileHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vaultsdk.ChangePasswordRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	if err := h.ProfileService.ChangePassword(ctx, httpx.AccountID(ctx), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.MessageResponse{Success: true, Message: "Password updated successfully!"})
}
