package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

// AuthHandler serves the challenge, signup, login and logout endpoints.
type AuthHandler struct {
	AuthService      *service.AuthService
	ChallengeService *service.ChallengeService
	Cookies          httpx.CookieConfig
}

// HandleChallenge handles GET /v1/challenge
//
//	@Summary		Get a login challenge
//	@Description	Issues a single-use human-verification question. Its answer expires after ten minutes.
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	{object}	vaultsdk.ChallengeResponse	"Challenge id and prompt"
//	@Failure		500	{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/challenge [get].
func (h *AuthHandler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	ch, err := h.ChallengeService.Issue(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to issue challenge", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, genericError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, challengeResponse(&ch))
}

// HandleSignup handles POST /v1/signup
//
//	@Summary		Create an account
//	@Description	Validates the password policy, creates the account and signs it in.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.SignupRequest	true	"Signup form"
//	@Success		201		{object}	vaultsdk.AuthResponse	"Account created and session cookie set"
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Validation failed"
//	@Failure		403		{object}	vaultsdk.ErrorResponse	"Consent required"
//	@Failure		429		{object}	vaultsdk.ErrorResponse	"Too many requests"
//	@Failure		500		{object}	vaultsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vaultsdk.SignupRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	grant, err := h.AuthService.Signup(ctx, service.SignupRequest{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Client:          clientContext(r, req.Client),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.SetSession(w, grant.Token, grant.ExpiresAt)
	httpx.WriteJSON(w, http.StatusCreated, authResponse(grant))
}

// HandleLogin handles POST /v1/login
//
//	@Summary		Sign in
//	@Description	Checks the challenge answer, the account lock and the password.
//	@Description	Every failure after the challenge was checked returns a fresh challenge.
//	@Description	Three wrong passwords lock the account for fifteen minutes.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.LoginRequest	true	"Login form"
//	@Success		200		{object}	vaultsdk.AuthResponse	"Signed in and session cookie set"
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Missing fields"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Challenge or credentials rejected"
//	@Failure		403		{object}	vaultsdk.ErrorResponse	"Consent required"
//	@Failure		423		{object}	vaultsdk.ErrorResponse	"Account locked"
//	@Failure		429		{object}	vaultsdk.ErrorResponse	"Too many requests"
//	@Failure		500		{object}	vaultsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req vaultsdk.LoginRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	var cam service.CameraDevice
	if req.Capture != "" {
		frame, err := decodeCapture(req.Capture)
		if err != nil {
			log.Warn("ignoring malformed capture", "err", err)
		} else {
			cam = service.UploadedFrame(frame)
		}
	}

	res, err := h.AuthService.Login(ctx, service.LoginRequest{
		Email:           req.Email,
		Password:        req.Password,
		ChallengeID:     req.ChallengeID,
		ChallengeAnswer: req.ChallengeAnswer,
		ConsentToken:    httpx.ConsentCookie(r),
		Camera:          cam,
		Client:          clientContext(r, req.Client),
	})
	if err != nil {
		status, body := errorResponse(r, err)
		body.Challenge = challengeResponse(res.Challenge)
		httpx.WriteJSON(w, status, body)
		return
	}

	h.Cookies.SetSession(w, res.Grant.Token, res.Grant.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, authResponse(res.Grant))
}

// HandleLogout handles POST /v1/logout
//
//	@Summary		Sign out
//	@Description	Deletes the session, stops its idle timer and clears the cookie.
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	{object}	vaultsdk.MessageResponse	"Signed out"
//	@Failure		500	{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := httpx.SessionCookie(r)
	if err := h.AuthService.Logout(r.Context(), token); err != nil && !errors.Is(err, service.ErrNoSession) {
		writeServiceError(w, r, err)
		return
	}
	h.Cookies.ClearSession(w)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.MessageResponse{Success: true, Message: "Logged out"})
}
