package service

import (
	"context"
	"fmt"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
)

const inboxLimit = 50

type NotificationService interface {
	GetNotifications(ctx context.Context, actor domain.Actor) (*domain.NotificationInbox, error)
	MarkNotificationRead(ctx context.Context, actor domain.Actor, notificationID string) error
}

type NotificationServiceImpl struct {
	BaseService
	notifications repository.NotificationRepository
}

func NewNotificationService(base BaseService, notifications repository.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		BaseService:   base,
		notifications: notifications,
	}
}

// GetNotifications returns the caller's latest unexpired notifications and the unread count.
func (s *NotificationServiceImpl) GetNotifications(ctx context.Context, actor domain.Actor) (*domain.NotificationInbox, error) {
	const op = "internal.service.notification.GetNotifications"

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	now := s.now()

	notifications, err := s.notifications.ListByUser(ctx, actor.ID, now, inboxLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list notifications: %w", op, err)
	}

	unread, err := s.notifications.CountUnread(ctx, actor.ID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count unread notifications: %w", op, err)
	}

	return &domain.NotificationInbox{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkNotificationRead marks one of the caller's notifications read. Marking it again is a no-op.
func (s *NotificationServiceImpl) MarkNotificationRead(ctx context.Context, actor domain.Actor, notificationID string) error {
	const op = "internal.service.notification.MarkNotificationRead"

	if err := requireActor(actor); err != nil {
		return err
	}

	found, err := s.notifications.MarkRead(ctx, notificationID, actor.ID, s.now())
	if err != nil {
		return fmt.Errorf("%s: failed to mark notification read: %w", op, err)
	}

	if !found {
		return fmt.Errorf("%s: %w: notification with id '%s'", op, apperrors.ErrNotFound, notificationID)
	}

	return nil
}
