package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventRequestCreated       EventType = "request.created"
	EventDonorNotified        EventType = "donor.notified"
	EventDonorResponded       EventType = "donor.responded"
	EventDonationLogged       EventType = "donation.logged"
	EventDonorEligible        EventType = "donor.eligible"
	EventRequestMatched       EventType = "request.matched"
	EventRequestStatusUpdated EventType = "request.statusUpdated"
	EventRequestRedirected    EventType = "request.redirected"
	EventHospitalApproved     EventType = "hospital.approved"
	EventHospitalRejected     EventType = "hospital.rejected"
	EventHospitalSuspended    EventType = "hospital.suspended"
	EventBroadcastSent        EventType = "broadcast.sent"

	EventAppointmentScheduled   EventType = "appointment.scheduled"
	EventAppointmentConfirmed   EventType = "appointment.confirmed"
	EventAppointmentRescheduled EventType = "appointment.rescheduled"
	EventAppointmentCancelled   EventType = "appointment.cancelled"
	EventAppointmentCompleted   EventType = "appointment.completed"
	EventAppointmentReminder    EventType = "appointment.reminder"
)

// Event is a domain fact emitted by a state change. It is stored in the outbox
// in the same transaction as the change and published later.
type Event struct {
	ID          string         `db:"id" json:"id"`
	Type        EventType      `db:"event_type" json:"type"`
	AggregateID string         `db:"aggregate_id" json:"aggregate_id"`
	OccurredAt  time.Time      `db:"created_at" json:"occurred_at"`
	Payload     map[string]any `db:"-" json:"payload"`
}

func NewEvent(eventType EventType, aggregateID string, at time.Time, payload map[string]any) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  at,
		Payload:     payload,
	}
}

func StatusUpdatedEvent(r *BloodRequest, from RequestStatus, at time.Time) Event {
	return NewEvent(EventRequestStatusUpdated, r.ID, at, map[string]any{
		"request_id":      r.ID,
		"hospital_id":     r.HospitalID,
		"requestor_id":    r.RequestorID,
		"from":            string(from),
		"to":              string(r.Status),
		"units_fulfilled": r.UnitsFulfilled,
	})
}
