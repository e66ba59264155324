package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

// NotificationsHandler serves the account's security inbox.
type NotificationsHandler struct {
	NotificationService *service.NotificationService
}

// HandleList handles GET /v1/notifications
//
//	@Summary		List security notifications
//	@Description	Newest first, with the unread count.
//	@Tags			Notifications
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	vaultsdk.NotificationListResponse	"Notifications"
//	@Failure		401	{object}	vaultsdk.ErrorResponse				"Not authenticated"
//	@Failure		500	{object}	vaultsdk.ErrorResponse				"Internal server error"
//	@Router			/v1/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.AccountID(ctx)

	ns, err := h.NotificationService.List(ctx, accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := vaultsdk.NotificationListResponse{
		Success:       true,
		Notifications: make([]vaultsdk.NotificationResponse, 0, len(ns)),
	}
	for _, n := range ns {
		out.Notifications = append(out.Notifications, notificationResponse(n))
		if !n.Read {
			out.Unread++
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /v1/notifications/{id}
//
//	@Summary		Get a security notification
//	@Tags			Notifications
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string							true	"Notification id"
//	@Success		200	{object}	vaultsdk.NotificationEnvelope	"Notification"
//	@Failure		401	{object}	vaultsdk.ErrorResponse			"Not authenticated"
//	@Failure		404	{object}	vaultsdk.ErrorResponse			"Notification not found"
//	@Router			/v1/notifications/{id} [get].
func (h *NotificationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.NotificationService.Get(ctx, httpx.AccountID(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.NotificationEnvelope{Success: true, Notification: notificationResponse(n)})
}

// HandleScreenshot handles GET /v1/notifications/{id}/screenshot
//
//	@Summary		Get the deterrent photo of a notification
//	@Tags			Notifications
//	@Security		SessionCookie
//	@Produce		jpeg
//	@Param			id	path		string					true	"Notification id"
//	@Success		200	{file}		binary					"JPEG image"
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		404	{object}	vaultsdk.ErrorResponse	"Notification or screenshot not found"
//	@Router			/v1/notifications/{id}/screenshot [get].
func (h *NotificationsHandler) HandleScreenshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.NotificationService.Get(ctx, httpx.AccountID(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(n.Screenshot) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "Screenshot not found")
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(n.Screenshot)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(n.Screenshot)
}

// HandleMarkRead handles POST /v1/notifications/{id}/read
//
//	@Summary		Mark a notification as read
//	@Tags			Notifications
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string						true	"Notification id"
//	@Success		200	{object}	vaultsdk.MessageResponse	"Marked as read"
//	@Failure		401	{object}	vaultsdk.ErrorResponse		"Not authenticated"
//	@Failure		404	{object}	vaultsdk.ErrorResponse		"Notification not found"
//	@Router			/v1/notifications/{id}/read [post].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.NotificationService.MarkRead(ctx, httpx.AccountID(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.MessageResponse{Success: true})
}

// HandleMarkAllRead handles POST /v1/notifications/read-all
//
//	@Summary		Mark every notification as read
//	@Tags			Notifications
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	vaultsdk.CountResponse	"Number of notifications changed"
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		500	{object}	vaultsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/notifications/read-all [post].
func (h *NotificationsHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.NotificationService.MarkAllRead(ctx, httpx.AccountID(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.CountResponse{Success: true, Count: n})
}

// HandleDelete handles DELETE /v1/notifications/{id}
//
//	@Summary		Delete a notification
//	@Tags			Notifications
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string						true	"Notification id"
//	@Success		200	{object}	vaultsdk.MessageResponse	"Deleted"
//	@Failure		401	{object}	vaultsdk.ErrorResponse		"Not authenticated"
//	@Failure		404	{object}	vaultsdk.ErrorResponse		"Notification not found"
//	@Router			/v1/notifications/{id} [delete].
func (h *NotificationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.NotificationService.Delete(ctx, httpx.AccountID(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.MessageResponse{Success: true})
}

// HandleUnreadCount handles GET /v1/notifications/unread-count
//
//	@Summary		Count unread notifications
//	@Tags			Notifications
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	vaultsdk.CountResponse	"Unread count"
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		500	{object}	vaultsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/notifications/unread-count [get].
func (h *NotificationsHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.NotificationService.CountUnread(ctx, httpx.AccountID(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.CountResponse{Success: true, Count: int64(n)})
}
