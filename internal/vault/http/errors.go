package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

const genericError = "Something went wrong. Please try again."

var kindStatus = map[service.ErrorKind]int{
	service.KindValidation:     http.StatusBadRequest,
	service.KindAuthentication: http.StatusUnauthorized,
	service.KindLockout:        http.StatusLocked,
	service.KindResource:       http.StatusServiceUnavailable,
	service.KindPersistence:    http.StatusInternalServerError,
	service.KindNotFound:       http.StatusNotFound,
}

// errorResponse maps a service failure to a status and envelope. Internal
// causes are logged, never returned.
func errorResponse(r *http.Request, err error) (int, vaultsdk.ErrorResponse) {
	log := slogx.FromContext(r.Context())

	e, ok := service.AsError(err)
	if !ok {
		switch {
		case errors.Is(err, service.ErrSessionExpired):
			return http.StatusUnauthorized, vaultsdk.ErrorResponse{Error: "Session expired"}
		case errors.Is(err, service.ErrNoSession):
			return http.StatusUnauthorized, vaultsdk.ErrorResponse{Error: "Not authenticated"}
		}
		log.Error("unhandled service error", "err", err)
		return http.StatusInternalServerError, vaultsdk.ErrorResponse{Error: genericError}
	}

	status, ok := kindStatus[e.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "kind", e.Kind, "err", e.Err)
	}
	return status, vaultsdk.ErrorResponse{
		Error:            e.Message,
		RemainingMinutes: e.RemainingMinutes,
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(r, err)
	httpx.WriteJSON(w, status, body)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Warn("failed to parse request", "err", err)
	httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
}
