package vaultsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func (c *Client) ListNotifications(ctx context.Context) (*NotificationListResponse, error) {
	var out NotificationListResponse
	if err := c.call(ctx, http.MethodGet, "/v1/notifications", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetNotification(ctx context.Context, id string) (*NotificationResponse, error) {
	var out NotificationEnvelope
	if err := c.call(ctx, http.MethodGet, "/v1/notifications/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Notification, nil
}

// GetScreenshot downloads the JPEG deterrent photo of a notification.
func (c *Client) GetScreenshot(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/notifications/"+url.PathEscape(id)+"/screenshot", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}
	return body, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodPost, "/v1/notifications/"+url.PathEscape(id)+"/read", nil, nil, http.StatusOK)
}

// MarkAllNotificationsRead returns how many notifications changed.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var out CountResponse
	if err := c.call(ctx, http.MethodPost, "/v1/notifications/read-all", nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/v1/notifications/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

func (c *Client) UnreadNotificationCount(ctx context.Context) (int64, error) {
	var out CountResponse
	if err := c.call(ctx, http.MethodGet, "/v1/notifications/unread-count", nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.Count, nil
}
