package domain

import "time"

type NotificationType string

const (
	NotificationBloodRequest        NotificationType = "blood_request"
	NotificationAppointmentReminder NotificationType = "appointment_reminder"
	NotificationAppointmentUpdate   NotificationType = "appointment_update"
	NotificationDonationConfirmed   NotificationType = "donation_confirmed"
	NotificationRequestFulfilled    NotificationType = "request_fulfilled"
	NotificationBroadcast           NotificationType = "broadcast"
	NotificationEligibilityRestored NotificationType = "eligibility_restored"
)

// Notification is one entry of a user's inbox. EventID names the outbox event it was
// derived from, so replaying an event never duplicates the entry.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	EventID   string           `json:"-"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	ExpiresAt time.Time        `json:"expires_at"`
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationInbox struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
