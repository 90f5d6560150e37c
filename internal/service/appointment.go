package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/metrics"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	defaultAppointmentsLimit = 20
	maxAppointmentsLimit     = 100

	reminderLead      = 24 * time.Hour
	reminderWindow    = 24 * time.Hour
	reminderBatchSize = 200
)

type ScheduleAppointmentInput struct {
	HospitalID   string
	RequestID    *string
	ScheduledAt  time.Time
	DonationType domain.DonationType
	Notes        *string
}

type AppointmentResult struct {
	Appointment *domain.Appointment
	Events      []domain.Event
}

type ReminderSweepResult struct {
	Reminded []string
	Failed   int
}

type AppointmentService interface {
	ScheduleAppointment(ctx context.Context, actor domain.Actor, in ScheduleAppointmentInput) (*AppointmentResult, error)
	GetAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*domain.Appointment, error)
	ListAppointments(ctx context.Context, actor domain.Actor, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	ConfirmAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*AppointmentResult, error)
	RescheduleAppointment(ctx context.Context, actor domain.Actor, appointmentID string, scheduledAt time.Time) (*AppointmentResult, error)
	CancelAppointment(ctx context.Context, actor domain.Actor, appointmentID, reason string) (*AppointmentResult, error)
	CompleteAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*AppointmentResult, error)
	ReminderSweep(ctx context.Context, now time.Time) (*ReminderSweepResult, error)
}

type AppointmentServiceImpl struct {
	BaseService
	appointments repository.AppointmentRepository
	donors       repository.DonorRepository
	hospitals    repository.HospitalRepository
	matches      repository.MatchRepository
}

func NewAppointmentService(
	base BaseService,
	appointments repository.AppointmentRepository,
	donors repository.DonorRepository,
	hospitals repository.HospitalRepository,
	matches repository.MatchRepository,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		BaseService:  base,
		appointments: appointments,
		donors:       donors,
		hospitals:    hospitals,
		matches:      matches,
	}
}

var appointmentEvents = map[domain.AppointmentStatus]domain.EventType{
	domain.AppointmentScheduled:   domain.EventAppointmentScheduled,
	domain.AppointmentConfirmed:   domain.EventAppointmentConfirmed,
	domain.AppointmentRescheduled: domain.EventAppointmentRescheduled,
	domain.AppointmentCancelled:   domain.EventAppointmentCancelled,
	domain.AppointmentCompleted:   domain.EventAppointmentCompleted,
}

// ScheduleAppointment books a donation slot for the calling donor at an approved hospital.
// The donor must be eligible on the booked day. A linked request needs an accepted match.
func (s *AppointmentServiceImpl) ScheduleAppointment(ctx context.Context, actor domain.Actor, in ScheduleAppointmentInput) (*AppointmentResult, error) {
	const op = "internal.service.appointment.ScheduleAppointment"
	log := s.log.With(slog.String("op", op), slog.String("donor_id", actor.ID))

	if err := requireRole(actor, domain.RoleDonor); err != nil {
		return nil, err
	}

	if in.DonationType == "" {
		in.DonationType = domain.DonationWholeBlood
	}

	if !in.DonationType.Valid() {
		return nil, fmt.Errorf("%w: unknown donation type '%s'", apperrors.ErrValidation, in.DonationType)
	}

	if strings.TrimSpace(in.HospitalID) == "" {
		return nil, fmt.Errorf("%w: hospital_id is required", apperrors.ErrValidation)
	}

	now := s.now()
	if !in.ScheduledAt.After(now) {
		return nil, fmt.Errorf("%w: appointment must be scheduled in the future", apperrors.ErrValidation)
	}

	appointment := &domain.Appointment{
		ID:           uuid.NewString(),
		DonorID:      actor.ID,
		HospitalID:   in.HospitalID,
		RequestID:    in.RequestID,
		ScheduledAt:  in.ScheduledAt.UTC(),
		DonationType: in.DonationType,
		Status:       domain.AppointmentScheduled,
		Notes:        trimmed(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result := &AppointmentResult{Appointment: appointment}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		donor, err := s.donors.GetDonorByID(ctx, tx, actor.ID)
		if err != nil {
			return err
		}

		eligibility := domain.EligibilityAt(donor.NextEligibleDate, appointment.ScheduledAt)
		if !eligibility.IsEligible {
			return fmt.Errorf("%w: donor is not eligible until %s",
				apperrors.ErrValidation, eligibility.NextEligibleDate.Format(time.DateOnly))
		}

		if _, err := approvedHospital(ctx, tx, s.hospitals, in.HospitalID); err != nil {
			return err
		}

		if in.RequestID != nil {
			match, err := s.matches.GetMatch(ctx, tx, *in.RequestID, actor.ID)
			if err != nil {
				if isNotFound(err) {
					return apperrors.ErrNotMatched
				}

				return fmt.Errorf("%s: failed to get match: %w", op, err)
			}

			if match.Status != domain.MatchAccepted {
				return fmt.Errorf("%w: match on request '%s' is '%s', not accepted",
					apperrors.ErrConflict, *in.RequestID, match.Status)
			}
		}

		if err := s.appointments.CreateAppointment(ctx, tx, appointment); err != nil {
			return err
		}

		result.Events = []domain.Event{appointmentEvent(appointment, domain.EventAppointmentScheduled, now, nil)}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("appointment scheduled",
		slog.String("appointment_id", appointment.ID),
		slog.String("hospital_id", appointment.HospitalID),
		slog.Time("scheduled_at", appointment.ScheduledAt),
	)

	return result, nil
}

func (s *AppointmentServiceImpl) GetAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*domain.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetAppointmentByID(ctx, s.db, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, s.db, actor, appointment, true); err != nil {
		return nil, err
	}

	return appointment, nil
}

// ListAppointments returns the caller's own appointments for donors and one hospital's
// appointments for its staff. Admins may list across hospitals.
func (s *AppointmentServiceImpl) ListAppointments(ctx context.Context, actor domain.Actor, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	if err := requireRole(actor, domain.RoleDonor, domain.RoleHospitalAdmin, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown appointment status '%s'", apperrors.ErrValidation, filter.Status)
	}

	switch actor.Role {
	case domain.RoleDonor:
		filter.DonorID = actor.ID
	case domain.RoleHospitalAdmin:
		if filter.HospitalID == "" {
			return nil, fmt.Errorf("%w: hospital_id is required", apperrors.ErrValidation)
		}

		hospital, err := s.hospitals.GetHospitalByID(ctx, s.db, filter.HospitalID)
		if err != nil {
			return nil, err
		}

		if err := requireHospitalStaff(actor, hospital, false); err != nil {
			return nil, err
		}
	}

	if filter.Limit == 0 {
		filter.Limit = defaultAppointmentsLimit
	}

	filter.Limit = min(filter.Limit, maxAppointmentsLimit)

	return s.appointments.ListAppointments(ctx, filter)
}

func (s *AppointmentServiceImpl) ConfirmAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*AppointmentResult, error) {
	const op = "internal.service.appointment.ConfirmAppointment"

	return s.transition(ctx, op, actor, appointmentID, domain.AppointmentConfirmed, false, nil,
		func(a *domain.Appointment, now time.Time) {
			a.ConfirmedAt = &now
			a.ConfirmedBy = &actor.ID
		})
}

// RescheduleAppointment moves an appointment to a new future time. The reminder is re-armed.
func (s *AppointmentServiceImpl) RescheduleAppointment(ctx context.Context, actor domain.Actor, appointmentID string, scheduledAt time.Time) (*AppointmentResult, error) {
	const op = "internal.service.appointment.RescheduleAppointment"

	if !scheduledAt.After(s.now()) {
		return nil, fmt.Errorf("%w: appointment must be rescheduled into the future", apperrors.ErrValidation)
	}

	return s.transition(ctx, op, actor, appointmentID, domain.AppointmentRescheduled, true, nil,
		func(a *domain.Appointment, _ time.Time) {
			previous := a.ScheduledAt
			a.RescheduledFrom = &previous
			a.ScheduledAt = scheduledAt.UTC()
			a.ReminderSentAt = nil
		})
}

func (s *AppointmentServiceImpl) CancelAppointment(ctx context.Context, actor domain.Actor, appointmentID, reason string) (*AppointmentResult, error) {
	const op = "internal.service.appointment.CancelAppointment"

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	return s.transition(ctx, op, actor, appointmentID, domain.AppointmentCancelled, true,
		map[string]any{"reason": reason},
		func(a *domain.Appointment, _ time.Time) {
			a.CancelReason = &reason
			a.CancelledBy = &actor.ID
		})
}

func (s *AppointmentServiceImpl) CompleteAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*AppointmentResult, error) {
	const op = "internal.service.appointment.CompleteAppointment"

	return s.transition(ctx, op, actor, appointmentID, domain.AppointmentCompleted, false, nil,
		func(a *domain.Appointment, now time.Time) {
			a.CompletedAt = &now
		})
}

// transition locks the appointment, checks access and the status machine, applies the
// change and records the matching appointment event. donorAllowed lets the booking donor
// act as well as hospital staff.
func (s *AppointmentServiceImpl) transition(
	ctx context.Context,
	op string,
	actor domain.Actor,
	appointmentID string,
	next domain.AppointmentStatus,
	donorAllowed bool,
	extra map[string]any,
	apply func(a *domain.Appointment, now time.Time),
) (*AppointmentResult, error) {
	log := s.log.With(slog.String("op", op), slog.String("appointment_id", appointmentID))

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	now := s.now()
	result := &AppointmentResult{}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		appointment, err := s.appointments.GetAppointmentByIDWithLock(ctx, tx, appointmentID)
		if err != nil {
			return err
		}

		if err := s.authorize(ctx, tx, actor, appointment, donorAllowed); err != nil {
			return err
		}

		if err := appointment.Status.ValidateTransition(next); err != nil {
			return err
		}

		apply(appointment, now)
		appointment.Status = next
		appointment.UpdatedAt = now

		if err := s.appointments.UpdateAppointment(ctx, tx, appointment); err != nil {
			return fmt.Errorf("%s: failed to update appointment: %w", op, err)
		}

		result.Appointment = appointment
		result.Events = []domain.Event{appointmentEvent(appointment, appointmentEvents[next], now, extra)}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("appointment updated", slog.String("status", string(next)), slog.String("actor_id", actor.ID))

	return result, nil
}

// authorize lets platform admins and the hospital's own admin through. The booking donor
// passes only when donorAllowed is set.
func (s *AppointmentServiceImpl) authorize(ctx context.Context, ext sqlx.ExtContext, actor domain.Actor, a *domain.Appointment, donorAllowed bool) error {
	if actor.Role == domain.RoleDonor {
		if donorAllowed && actor.ID == a.DonorID {
			return nil
		}

		return fmt.Errorf("%w: appointment belongs to another donor", apperrors.ErrForbidden)
	}

	if actor.IsAdmin() {
		return nil
	}

	hospital, err := s.hospitals.GetHospitalByID(ctx, ext, a.HospitalID)
	if err != nil {
		return err
	}

	return requireHospitalStaff(actor, hospital, true)
}

// ReminderSweep emits appointment.reminder for every open appointment starting between
// 24 and 48 hours after now. Each reminder is claimed with a conditional update, so
// overlapping runs never remind twice.
func (s *AppointmentServiceImpl) ReminderSweep(ctx context.Context, now time.Time) (*ReminderSweepResult, error) {
	const op = "internal.service.appointment.ReminderSweep"
	log := s.log.With(slog.String("op", op), slog.Time("now", now))

	from := now.Add(reminderLead)
	to := from.Add(reminderWindow)
	result := &ReminderSweepResult{Reminded: []string{}}

	for {
		due, err := s.appointments.ListDueReminders(ctx, from, to, reminderBatchSize)
		if err != nil {
			return result, fmt.Errorf("%s: failed to list due reminders: %w", op, err)
		}

		sent := 0

		for i := range due {
			if err := ctx.Err(); err != nil {
				return result, fmt.Errorf("%s: %w", op, err)
			}

			reminded, err := s.remind(ctx, &due[i], now)
			if err != nil {
				result.Failed++
				metrics.SweepItemsTotal.WithLabelValues("reminder", "failed").Inc()
				log.Error("failed to send reminder", slog.String("appointment_id", due[i].ID), sl.Err(err))

				continue
			}

			if reminded {
				sent++
				result.Reminded = append(result.Reminded, due[i].ID)
				metrics.SweepItemsTotal.WithLabelValues("reminder", "sent").Inc()
			}
		}

		// Sent reminders drop out of the next read; stop on a short page or one that made no progress.
		if len(due) < reminderBatchSize || sent == 0 {
			break
		}
	}

	log.Info("reminder sweep finished", slog.Int("reminded", len(result.Reminded)), slog.Int("failed", result.Failed))

	return result, nil
}

func (s *AppointmentServiceImpl) remind(ctx context.Context, a *domain.Appointment, now time.Time) (bool, error) {
	const op = "internal.service.appointment.remind"

	var claimed bool

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		claimed, err = s.appointments.MarkReminderSent(ctx, tx, a.ID, now)
		if err != nil {
			return fmt.Errorf("%s: failed to mark reminder sent: %w", op, err)
		}

		if !claimed {
			return nil
		}

		return s.emit(ctx, tx, op, appointmentEvent(a, domain.EventAppointmentReminder, now, nil))
	})

	return claimed, err
}

func appointmentEvent(a *domain.Appointment, eventType domain.EventType, at time.Time, extra map[string]any) domain.Event {
	payload := map[string]any{
		"appointment_id": a.ID,
		"donor_id":       a.DonorID,
		"hospital_id":    a.HospitalID,
		"scheduled_at":   a.ScheduledAt.Format(time.RFC3339),
		"donation_type":  string(a.DonationType),
		"status":         string(a.Status),
	}

	if a.RequestID != nil {
		payload["request_id"] = *a.RequestID
	}

	if a.RescheduledFrom != nil {
		payload["rescheduled_from"] = a.RescheduledFrom.Format(time.RFC3339)
	}

	for k, v := range extra {
		payload[k] = v
	}

	return domain.NewEvent(eventType, a.ID, at, payload)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}

	return &v
}
