package domain

import (
	"time"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
)

type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "scheduled"
	AppointmentConfirmed   AppointmentStatus = "confirmed"
	AppointmentRescheduled AppointmentStatus = "rescheduled"
	AppointmentCancelled   AppointmentStatus = "cancelled"
	AppointmentCompleted   AppointmentStatus = "completed"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled: {
		AppointmentConfirmed, AppointmentRescheduled, AppointmentCancelled, AppointmentCompleted,
	},
	AppointmentConfirmed: {
		AppointmentRescheduled, AppointmentCancelled, AppointmentCompleted,
	},
	AppointmentRescheduled: {
		AppointmentConfirmed, AppointmentRescheduled, AppointmentCancelled, AppointmentCompleted,
	},
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentRescheduled, AppointmentCancelled, AppointmentCompleted:
		return true
	}

	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCancelled || s == AppointmentCompleted
}

func (s AppointmentStatus) ValidateTransition(next AppointmentStatus) error {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return nil
		}
	}

	return &apperrors.TransitionError{Entity: "appointment", From: string(s), To: string(next)}
}

// RemindableStatuses are the appointment statuses that still get a reminder.
var RemindableStatuses = []AppointmentStatus{AppointmentScheduled, AppointmentConfirmed, AppointmentRescheduled}

type Appointment struct {
	ID              string            `db:"id" json:"id"`
	DonorID         string            `db:"donor_id" json:"donor_id"`
	HospitalID      string            `db:"hospital_id" json:"hospital_id"`
	RequestID       *string           `db:"request_id" json:"request_id,omitempty"`
	ScheduledAt     time.Time         `db:"scheduled_at" json:"scheduled_at"`
	DonationType    DonationType      `db:"donation_type" json:"donation_type"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`
	ConfirmedAt     *time.Time        `db:"confirmed_at" json:"confirmed_at,omitempty"`
	ConfirmedBy     *string           `db:"confirmed_by" json:"confirmed_by,omitempty"`
	RescheduledFrom *time.Time        `db:"rescheduled_from" json:"rescheduled_from,omitempty"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CancelledBy     *string           `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CompletedAt     *time.Time        `db:"completed_at" json:"completed_at,omitempty"`
	ReminderSentAt  *time.Time        `db:"reminder_sent_at" json:"reminder_sent_at,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentFilter narrows appointment listings. Day selects appointments scheduled
// within that UTC calendar day.
type AppointmentFilter struct {
	HospitalID string
	DonorID    string
	Status     AppointmentStatus
	Day        *time.Time
	Limit      uint64
	Offset     uint64
}
