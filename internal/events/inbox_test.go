package events

import (
	"context"
	"errors"
	"testing"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInboxEntries(t *testing.T) {
	event := func(eventType domain.EventType, payload map[string]any) domain.Event {
		return domain.Event{ID: "e1", Type: eventType, AggregateID: "a1", OccurredAt: testNow, Payload: payload}
	}

	tests := []struct {
		name      string
		event     domain.Event
		wantUsers []string
		wantType  domain.NotificationType
		wantTTL   int
	}{
		{
			name: "Donor notified about a request",
			event: event(domain.EventDonorNotified, map[string]any{
				"request_id": "r1", "donor_id": "d1", "hospital_id": "h1", "blood_type": "O-", "urgency": "critical",
			}),
			wantUsers: []string{"d1"},
			wantType:  domain.NotificationBloodRequest,
			wantTTL:   7,
		},
		{
			name:      "Donor eligible again",
			event:     event(domain.EventDonorEligible, map[string]any{"donor_id": "d1"}),
			wantUsers: []string{"d1"},
			wantType:  domain.NotificationEligibilityRestored,
			wantTTL:   30,
		},
		{
			name: "Donation logged",
			event: event(domain.EventDonationLogged, map[string]any{
				"donation_id": "don1", "donor_id": "d1", "hospital_id": "h1", "points_awarded": float64(100),
			}),
			wantUsers: []string{"d1"},
			wantType:  domain.NotificationDonationConfirmed,
			wantTTL:   30,
		},
		{
			name: "Request fulfilled",
			event: event(domain.EventRequestStatusUpdated, map[string]any{
				"request_id": "r1", "requestor_id": "rc1", "from": "partially_fulfilled", "to": "fulfilled",
			}),
			wantUsers: []string{"rc1"},
			wantType:  domain.NotificationRequestFulfilled,
			wantTTL:   30,
		},
		{
			name: "Broadcast decoded from JSON",
			event: event(domain.EventBroadcastSent, map[string]any{
				"broadcast_id": "b1", "title": "Drive", "message": "Come donate", "recipient_ids": []any{"d1", "d2"},
			}),
			wantUsers: []string{"d1", "d2"},
			wantType:  domain.NotificationBroadcast,
			wantTTL:   30,
		},
		{
			name: "Broadcast straight from the service",
			event: event(domain.EventBroadcastSent, map[string]any{
				"broadcast_id": "b1", "title": "Drive", "message": "Come donate", "recipient_ids": []string{"d3"},
			}),
			wantUsers: []string{"d3"},
			wantType:  domain.NotificationBroadcast,
			wantTTL:   30,
		},
		{
			name: "Appointment reminder",
			event: event(domain.EventAppointmentReminder, map[string]any{
				"appointment_id": "ap1", "donor_id": "d1", "hospital_id": "h1", "scheduled_at": "2026-03-02T12:00:00Z",
			}),
			wantUsers: []string{"d1"},
			wantType:  domain.NotificationAppointmentReminder,
			wantTTL:   7,
		},
		{
			name: "Appointment cancelled",
			event: event(domain.EventAppointmentCancelled, map[string]any{
				"appointment_id": "ap1", "donor_id": "d1", "status": "cancelled", "reason": "closed",
			}),
			wantUsers: []string{"d1"},
			wantType:  domain.NotificationAppointmentUpdate,
			wantTTL:   30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := inboxEntries(tt.event)

			require.Len(t, entries, len(tt.wantUsers))

			for i, entry := range entries {
				assert.Equal(t, tt.wantUsers[i], entry.UserID)
				assert.Equal(t, tt.wantType, entry.Type)
				assert.Equal(t, "e1", entry.EventID)
				assert.NotEmpty(t, entry.ID)
				assert.NotEmpty(t, entry.Title)
				assert.Equal(t, testNow, entry.CreatedAt)
				assert.Equal(t, testNow.AddDate(0, 0, tt.wantTTL), entry.ExpiresAt)
			}
		})
	}

	t.Run("Events without an inbox entry", func(t *testing.T) {
		silent := []domain.Event{
			event(domain.EventRequestCreated, map[string]any{"request_id": "r1"}),
			event(domain.EventRequestStatusUpdated, map[string]any{"requestor_id": "rc1", "to": "cancelled"}),
			event(domain.EventDonorNotified, map[string]any{"request_id": "r1"}),
			event(domain.EventBroadcastSent, map[string]any{"title": "Drive"}),
		}

		for _, e := range silent {
			assert.Empty(t, inboxEntries(e), e.Type)
		}
	})

	t.Run("Data keeps only the listed keys", func(t *testing.T) {
		entries := inboxEntries(event(domain.EventDonorNotified, map[string]any{
			"request_id": "r1", "donor_id": "d1", "blood_type": "O-", "urgency": "high", "internal": "x",
		}))

		require.Len(t, entries, 1)
		assert.Equal(t, map[string]any{"request_id": "r1", "blood_type": "O-", "urgency": "high"}, entries[0].Data)
		assert.Contains(t, entries[0].Message, "O-")
	})
}

func TestInboxProjector_Project(t *testing.T) {
	ctx := context.Background()

	t.Run("Entries of every event are inserted together", func(t *testing.T) {
		notifications := new(NotificationRepositoryMock)
		projector := NewInboxProjector(notifications, discardLogger())

		notifications.On("CreateNotifications", ctx, mock.Anything, mock.MatchedBy(func(rows []domain.Notification) bool {
			return len(rows) == 1 && rows[0].UserID == "d1" && rows[0].EventID == "e2"
		})).Return(int64(1), nil).Once()

		require.NoError(t, projector.Project(ctx, nil, testEvents()))
		notifications.AssertExpectations(t)
	})

	t.Run("Nothing to insert", func(t *testing.T) {
		notifications := new(NotificationRepositoryMock)
		projector := NewInboxProjector(notifications, discardLogger())

		require.NoError(t, projector.Project(ctx, nil, testEvents()[:1]))
		notifications.AssertNotCalled(t, "CreateNotifications", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insert error is returned", func(t *testing.T) {
		notifications := new(NotificationRepositoryMock)
		projector := NewInboxProjector(notifications, discardLogger())
		dbErr := errors.New("db down")

		notifications.On("CreateNotifications", ctx, mock.Anything, mock.Anything).Return(int64(0), dbErr).Once()

		assert.ErrorIs(t, projector.Project(ctx, nil, testEvents()), dbErr)
	})
}
