package http

import (
	"net/http"

	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

const resetRequestedMessage = "If an account exists for that email, a reset code has been sent."

// ResetHandler serves the two steps of a password reset.
type ResetHandler struct {
	ProfileService *service.ProfileService
}

// HandleRequest handles POST /v1/password-reset
//
//	@Summary		Request a password reset code
//	@Description	Sends a six-digit code valid for fifteen minutes. The response does not reveal whether the email is registered.
//	@Tags			Password Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.ResetRequest		true	"Account email"
//	@Success		202		{object}	vaultsdk.MessageResponse	"Request accepted"
//	@Failure		400		{object}	vaultsdk.ErrorResponse		"Invalid request body"
//	@Failure		429		{object}	vaultsdk.ErrorResponse		"Too many requests"
//	@Failure		500		{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/password-reset [post].
func (h *ResetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.ResetRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	if err := h.ProfileService.RequestReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, vaultsdk.MessageResponse{Success: true, Message: resetRequestedMessage})
}

// HandleConfirm handles POST /v1/password-reset/confirm
//
//	@Summary		Reset the password with a code
//	@Description	Sets the new password, clears any lockout and signs out every session of the account.
//	@Tags			Password Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.ResetConfirmRequest	true	"Email, code and new password"
//	@Success		200		{object}	vaultsdk.MessageResponse		"Password reset"
//	@Failure		400		{object}	vaultsdk.ErrorResponse			"Password rejected by policy"
//	@Failure		401		{object}	vaultsdk.ErrorResponse			"Invalid or expired reset code"
//	@Failure		429		{object}	vaultsdk.ErrorResponse			"Too many requests"
//	@Failure		500		{object}	vaultsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/password-reset/confirm [post].
func (h *ResetHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.ResetConfirmRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	err := h.ProfileService.ConfirmReset(r.Context(), service.ResetConfirm{
		Email:           req.Email,
		Code:            req.Code,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.MessageResponse{Success: true, Message: "Password reset successfully! Please log in."})
}
