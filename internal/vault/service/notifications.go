package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
)

// NotificationService is the owner-scoped inbox of security notifications.
type NotificationService struct {
	Store store.Store
}

func (s *NotificationService) List(ctx context.Context, accountID string) ([]domain.SecurityNotification, error) {
	ns, err := s.Store.Notifications().ListNotifications(ctx, accountID)
	if err != nil {
		return nil, persistenceError("Failed to load notifications", err)
	}
	return ns, nil
}

func (s *NotificationService) Get(ctx context.Context, accountID, id string) (domain.SecurityNotification, error) {
	n, err := s.Store.Notifications().GetNotification(ctx, accountID, id)
	if err != nil {
		return domain.SecurityNotification{}, notificationError("Failed to load notification", err)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, accountID, id string) error {
	if err := s.Store.Notifications().MarkNotificationRead(ctx, accountID, id); err != nil {
		return notificationError("Failed to mark notification as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, accountID string) (int64, error) {
	n, err := s.Store.Notifications().MarkAllNotificationsRead(ctx, accountID)
	if err != nil {
		return 0, persistenceError("Failed to mark notifications as read", err)
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, accountID, id string) error {
	if err := s.Store.Notifications().DeleteNotification(ctx, accountID, id); err != nil {
		return notificationError("Failed to delete notification", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, accountID string) (int, error) {
	n, err := s.Store.Notifications().CountUnreadNotifications(ctx, accountID)
	if err != nil {
		return 0, persistenceError("Failed to load notifications", err)
	}
	return n, nil
}

func notificationError(msg string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError("Notification not found", err)
	}
	return persistenceError(msg, err)
}
