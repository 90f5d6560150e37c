package service

import (
	"context"
	"errors"
	"testing"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationServiceImpl_GetNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("Inbox with unread count", func(t *testing.T) {
		notifications := new(NotificationRepositoryMock)
		svc := NewNotificationService(newTestBase(new(TransactorMock), new(OutboxRepositoryMock)), notifications)

		rows := []domain.Notification{
			{ID: "n2", UserID: "d1", Type: domain.NotificationBloodRequest, CreatedAt: testNow},
			{ID: "n1", UserID: "d1", Type: domain.NotificationEligibilityRestored, IsRead: true, CreatedAt: testNow.AddDate(0, 0, -1)},
		}

		notifications.On("ListByUser", ctx, "d1", testNow, uint64(50)).Return(rows, nil).Once()
		notifications.On("CountUnread", ctx, "d1", testNow).Return(1, nil).Once()

		inbox, err := svc.GetNotifications(ctx, donorActor)

		require.NoError(t, err)
		assert.Equal(t, rows, inbox.Notifications)
		assert.Equal(t, 1, inbox.UnreadCount)
		notifications.AssertExpectations(t)
	})

	t.Run("Anonymous caller", func(t *testing.T) {
		notifications := new(NotificationRepositoryMock)
		svc := NewNotificationService(newTestBase(new(TransactorMock), new(OutboxRepositoryMock)), notifications)

		_, err := svc.GetNotifications(ctx, domain.Actor{})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		notifications.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Listing failure", func(t *testing.T) {
		notifications := new(NotificationRepositoryMock)
		svc := NewNotificationService(newTestBase(new(TransactorMock), new(OutboxRepositoryMock)), notifications)

		notifications.On("ListByUser", ctx, "rc1", testNow, uint64(50)).Return(nil, errors.New("db down")).Once()

		_, err := svc.GetNotifications(ctx, recipientActor)

		assert.ErrorContains(t, err, "db down")
	})
}

func TestNotificationServiceImpl_MarkNotificationRead(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		found       bool
		repoErr     error
		expectedErr error
	}{
		{name: "Own notification", found: true},
		{name: "Missing or someone else's notification", found: false, expectedErr: apperrors.ErrNotFound},
		{name: "Store failure", repoErr: errors.New("db down")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			notifications := new(NotificationRepositoryMock)
			svc := NewNotificationService(newTestBase(new(TransactorMock), new(OutboxRepositoryMock)), notifications)

			notifications.On("MarkRead", ctx, "n1", "d1", testNow).Return(tc.found, tc.repoErr).Once()

			err := svc.MarkNotificationRead(ctx, donorActor, "n1")

			switch {
			case tc.repoErr != nil:
				assert.ErrorIs(t, err, tc.repoErr)
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			default:
				require.NoError(t, err)
			}

			notifications.AssertExpectations(t)
		})
	}
}
