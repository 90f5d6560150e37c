package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

var hospitalColumns = []string{
	"id", "name", "city", "admin_user_id", "status", "rejected_reason",
	"approved_at", "approved_by", "suspended_at", "suspended_reason",
	"total_requests_fulfilled", "total_donations_processed", "created_at",
}

type HospitalRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.HospitalRepository = (*HospitalRepository)(nil)

func NewHospitalRepository(db *sqlx.DB, log *slog.Logger) *HospitalRepository {
	return &HospitalRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *HospitalRepository) CreateHospital(ctx context.Context, tx *sqlx.Tx, hospital *domain.Hospital) error {
	const op = "internal.repository.postgres.hospital.CreateHospital"

	query, args, err := r.sq.Insert("hospitals").
		Columns("id", "name", "city", "admin_user_id", "status", "created_at").
		Values(hospital.ID, hospital.Name, hospital.City, hospital.AdminUserID, hospital.Status, hospital.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqUniqueViolation {
			return &apperrors.AlreadyExistsError{Entity: "hospital", ID: hospital.ID}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *HospitalRepository) GetHospitalByID(ctx context.Context, ext sqlx.ExtContext, hospitalID string) (*domain.Hospital, error) {
	const op = "internal.repository.postgres.hospital.GetHospitalByID"

	return r.getHospital(ctx, ext, op, hospitalID, "")
}

func (r *HospitalRepository) GetHospitalByIDWithLock(ctx context.Context, tx *sqlx.Tx, hospitalID string) (*domain.Hospital, error) {
	const op = "internal.repository.postgres.hospital.GetHospitalByIDWithLock"

	return r.getHospital(ctx, tx, op, hospitalID, "FOR UPDATE")
}

func (r *HospitalRepository) getHospital(ctx context.Context, ext sqlx.ExtContext, op, hospitalID, suffix string) (*domain.Hospital, error) {
	builder := r.sq.Select(hospitalColumns...).
		From("hospitals").
		Where(sq.Eq{"id": hospitalID})

	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var hospital domain.Hospital
	if err := sqlx.GetContext(ctx, ext, &hospital, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: hospital with id '%s'", op, apperrors.ErrNotFound, hospitalID)
		}

		return nil, fmt.Errorf("%s: failed to get hospital: %w", op, err)
	}

	return &hospital, nil
}

func (r *HospitalRepository) UpdateHospitalStatus(ctx context.Context, tx *sqlx.Tx, hospital *domain.Hospital) error {
	const op = "internal.repository.postgres.hospital.UpdateHospitalStatus"

	query, args, err := r.sq.Update("hospitals").
		Set("status", hospital.Status).
		Set("rejected_reason", hospital.RejectedReason).
		Set("approved_at", hospital.ApprovedAt).
		Set("approved_by", hospital.ApprovedBy).
		Set("suspended_at", hospital.SuspendedAt).
		Set("suspended_reason", hospital.SuspendedReason).
		Where(sq.Eq{"id": hospital.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execCounter(ctx, tx, op, query, args, hospital.ID)
}

func (r *HospitalRepository) IncrementRequestsFulfilled(ctx context.Context, tx *sqlx.Tx, hospitalID string) error {
	const op = "internal.repository.postgres.hospital.IncrementRequestsFulfilled"

	query, args, err := r.sq.Update("hospitals").
		Set("total_requests_fulfilled", sq.Expr("total_requests_fulfilled + 1")).
		Where(sq.Eq{"id": hospitalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execCounter(ctx, tx, op, query, args, hospitalID)
}

func (r *HospitalRepository) IncrementDonationsProcessed(ctx context.Context, tx *sqlx.Tx, hospitalID string) error {
	const op = "internal.repository.postgres.hospital.IncrementDonationsProcessed"

	query, args, err := r.sq.Update("hospitals").
		Set("total_donations_processed", sq.Expr("total_donations_processed + 1")).
		Where(sq.Eq{"id": hospitalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execCounter(ctx, tx, op, query, args, hospitalID)
}

func (r *HospitalRepository) execCounter(ctx context.Context, tx *sqlx.Tx, op, query string, args []interface{}, hospitalID string) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: hospital with id '%s'", op, apperrors.ErrNotFound, hospitalID)
	}

	return nil
}
