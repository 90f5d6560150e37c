package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

var appointmentColumns = []string{
	"id", "donor_id", "hospital_id", "request_id", "scheduled_at", "donation_type", "status", "notes",
	"confirmed_at", "confirmed_by", "rescheduled_from", "cancel_reason", "cancelled_by",
	"completed_at", "reminder_sent_at", "created_at", "updated_at",
}

type AppointmentRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *sqlx.DB, log *slog.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, tx *sqlx.Tx, a *domain.Appointment) error {
	const op = "internal.repository.postgres.appointment.CreateAppointment"

	query, args, err := r.sq.Insert("appointments").
		Columns(
			"id", "donor_id", "hospital_id", "request_id", "scheduled_at", "donation_type",
			"status", "notes", "created_at", "updated_at",
		).
		Values(
			a.ID, a.DonorID, a.HospitalID, a.RequestID, a.ScheduledAt, a.DonationType,
			a.Status, a.Notes, a.CreatedAt, a.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return &apperrors.AlreadyExistsError{Entity: "appointment", ID: a.ID}
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: donor, hospital or request of appointment '%s'", op, apperrors.ErrNotFound, a.ID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *AppointmentRepository) GetAppointmentByID(ctx context.Context, ext sqlx.ExtContext, appointmentID string) (*domain.Appointment, error) {
	const op = "internal.repository.postgres.appointment.GetAppointmentByID"

	return r.getAppointment(ctx, ext, op, appointmentID, "")
}

func (r *AppointmentRepository) GetAppointmentByIDWithLock(ctx context.Context, tx *sqlx.Tx, appointmentID string) (*domain.Appointment, error) {
	const op = "internal.repository.postgres.appointment.GetAppointmentByIDWithLock"

	return r.getAppointment(ctx, tx, op, appointmentID, "FOR UPDATE")
}

func (r *AppointmentRepository) getAppointment(ctx context.Context, ext sqlx.ExtContext, op, appointmentID, suffix string) (*domain.Appointment, error) {
	builder := r.sq.Select(appointmentColumns...).
		From("appointments").
		Where(sq.Eq{"id": appointmentID})

	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var appointment domain.Appointment
	if err := sqlx.GetContext(ctx, ext, &appointment, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: appointment with id '%s'", op, apperrors.ErrNotFound, appointmentID)
		}

		return nil, fmt.Errorf("%s: failed to get appointment: %w", op, err)
	}

	return &appointment, nil
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, tx *sqlx.Tx, a *domain.Appointment) error {
	const op = "internal.repository.postgres.appointment.UpdateAppointment"

	query, args, err := r.sq.Update("appointments").
		Set("scheduled_at", a.ScheduledAt).
		Set("status", a.Status).
		Set("notes", a.Notes).
		Set("confirmed_at", a.ConfirmedAt).
		Set("confirmed_by", a.ConfirmedBy).
		Set("rescheduled_from", a.RescheduledFrom).
		Set("cancel_reason", a.CancelReason).
		Set("cancelled_by", a.CancelledBy).
		Set("completed_at", a.CompletedAt).
		Set("reminder_sent_at", a.ReminderSentAt).
		Set("updated_at", a.UpdatedAt).
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: appointment with id '%s'", op, apperrors.ErrNotFound, a.ID)
	}

	return nil
}

func (r *AppointmentRepository) ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	const op = "internal.repository.postgres.appointment.ListAppointments"

	builder := r.sq.Select(appointmentColumns...).
		From("appointments").
		OrderBy("scheduled_at", "id")

	if filter.HospitalID != "" {
		builder = builder.Where(sq.Eq{"hospital_id": filter.HospitalID})
	}

	if filter.DonorID != "" {
		builder = builder.Where(sq.Eq{"donor_id": filter.DonorID})
	}

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	if filter.Day != nil {
		start := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, time.UTC)
		builder = builder.
			Where(sq.GtOrEq{"scheduled_at": start}).
			Where(sq.Lt{"scheduled_at": start.AddDate(0, 0, 1)})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	appointments := []domain.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return appointments, nil
}

func (r *AppointmentRepository) ListDueReminders(ctx context.Context, from, to time.Time, limit uint64) ([]domain.Appointment, error) {
	const op = "internal.repository.postgres.appointment.ListDueReminders"

	builder := r.sq.Select(appointmentColumns...).
		From("appointments").
		Where(sq.Eq{"status": domain.RemindableStatuses}).
		Where(sq.Eq{"reminder_sent_at": nil}).
		Where(sq.GtOrEq{"scheduled_at": from}).
		Where(sq.Lt{"scheduled_at": to}).
		OrderBy("scheduled_at", "id")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	appointments := []domain.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return appointments, nil
}

func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, tx *sqlx.Tx, appointmentID string, now time.Time) (bool, error) {
	const op = "internal.repository.postgres.appointment.MarkReminderSent"

	query, args, err := r.sq.Update("appointments").
		Set("reminder_sent_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"id": appointmentID}).
		Where(sq.Eq{"reminder_sent_at": nil}).
		Where(sq.Eq{"status": domain.RemindableStatuses}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return rows == 1, nil
}
