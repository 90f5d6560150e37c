package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	shortInboxTTL = 7 * 24 * time.Hour
	longInboxTTL  = 30 * 24 * time.Hour
)

// InboxProjector turns published events into per-user notifications. Rows are keyed by
// (event id, user id), so a redelivered event never shows up twice in an inbox.
type InboxProjector struct {
	notifications repository.NotificationRepository
	log           *slog.Logger
}

var _ Projector = (*InboxProjector)(nil)

func NewInboxProjector(notifications repository.NotificationRepository, log *slog.Logger) *InboxProjector {
	return &InboxProjector{
		notifications: notifications,
		log:           log,
	}
}

func (p *InboxProjector) Project(ctx context.Context, tx *sqlx.Tx, events []domain.Event) error {
	const op = "internal.events.inbox.Project"

	var rows []domain.Notification
	for _, e := range events {
		rows = append(rows, inboxEntries(e)...)
	}

	if len(rows) == 0 {
		return nil
	}

	inserted, err := p.notifications.CreateNotifications(ctx, tx, rows)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.log.Debug("notifications projected",
		slog.String("op", op),
		slog.Int("events", len(events)),
		slog.Int64("inserted", inserted),
	)

	return nil
}

// inboxEntries maps one event to the notifications it produces. Events that carry no
// recipient produce none.
func inboxEntries(e domain.Event) []domain.Notification {
	payload := e.Payload

	entry := func(userID string, kind domain.NotificationType, title, message string, ttl time.Duration, data map[string]any) domain.Notification {
		return domain.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			EventID:   e.ID,
			Type:      kind,
			Title:     title,
			Message:   message,
			Data:      data,
			ExpiresAt: e.OccurredAt.Add(ttl),
			CreatedAt: e.OccurredAt,
		}
	}

	single := func(userID string, kind domain.NotificationType, title, message string, ttl time.Duration, keys ...string) []domain.Notification {
		if userID == "" {
			return nil
		}

		return []domain.Notification{entry(userID, kind, title, message, ttl, pick(payload, keys...))}
	}

	switch e.Type {
	case domain.EventDonorNotified:
		return single(stringField(payload, "donor_id"), domain.NotificationBloodRequest,
			"Blood donation needed",
			fmt.Sprintf("A hospital needs %s blood, urgency %s.", stringField(payload, "blood_type"), stringField(payload, "urgency")),
			shortInboxTTL, "request_id", "hospital_id", "blood_type", "urgency")

	case domain.EventDonorEligible:
		return single(stringField(payload, "donor_id"), domain.NotificationEligibilityRestored,
			"You can donate again",
			"Your recovery period is over and you are eligible to donate.",
			longInboxTTL)

	case domain.EventDonationLogged:
		return single(stringField(payload, "donor_id"), domain.NotificationDonationConfirmed,
			"Donation recorded",
			fmt.Sprintf("Thank you for donating. You earned %v points.", payload["points_awarded"]),
			longInboxTTL, "donation_id", "hospital_id", "request_id", "points_awarded", "next_eligible_date")

	case domain.EventRequestStatusUpdated:
		if stringField(payload, "to") != string(domain.RequestFulfilled) {
			return nil
		}

		return single(stringField(payload, "requestor_id"), domain.NotificationRequestFulfilled,
			"Blood request fulfilled",
			"The hospital has fulfilled your blood request.",
			longInboxTTL, "request_id", "hospital_id")

	case domain.EventBroadcastSent:
		title, message := stringField(payload, "title"), stringField(payload, "message")
		data := pick(payload, "broadcast_id")

		var rows []domain.Notification
		for _, userID := range stringList(payload, "recipient_ids") {
			rows = append(rows, entry(userID, domain.NotificationBroadcast, title, message, longInboxTTL, data))
		}

		return rows

	case domain.EventAppointmentReminder:
		return single(stringField(payload, "donor_id"), domain.NotificationAppointmentReminder,
			"Donation appointment tomorrow",
			fmt.Sprintf("Your donation appointment is scheduled for %s.", stringField(payload, "scheduled_at")),
			shortInboxTTL, "appointment_id", "hospital_id", "scheduled_at")

	case domain.EventAppointmentConfirmed, domain.EventAppointmentRescheduled, domain.EventAppointmentCancelled:
		status := stringField(payload, "status")

		return single(stringField(payload, "donor_id"), domain.NotificationAppointmentUpdate,
			"Appointment "+status,
			fmt.Sprintf("Your donation appointment for %s is now %s.", stringField(payload, "scheduled_at"), status),
			longInboxTTL, "appointment_id", "hospital_id", "scheduled_at", "status", "reason")
	}

	return nil
}

func stringField(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	}

	return ""
}

// stringList reads a list that is []string before a JSON round trip and []any after it.
func stringList(payload map[string]any, key string) []string {
	switch v := payload[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}

		return out
	}

	return nil
}

func pick(payload map[string]any, keys ...string) map[string]any {
	data := make(map[string]any, len(keys))
	for _, key := range keys {
		if v, ok := payload[key]; ok {
			data[key] = v
		}
	}

	return data
}
