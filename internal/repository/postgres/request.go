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

var requestColumns = []string{
	"id", "source", "requestor_id", "hospital_id", "blood_type", "donation_type",
	"units_needed", "units_fulfilled", "urgency", "status", "required_by",
	"patient_name", "patient_age", "medical_condition", "notes",
	"redirected_by", "redirected_to", "fulfilled_at", "created_at", "updated_at",
}

var matchColumns = []string{
	"request_id", "donor_id", "status", "notified_at", "responded_at", "decline_reason",
}

// urgencyOrder sorts critical requests first.
const urgencyOrder = "CASE urgency WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

type RequestRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var (
	_ repository.RequestRepository = (*RequestRepository)(nil)
	_ repository.MatchRepository   = (*RequestRepository)(nil)
)

func NewRequestRepository(db *sqlx.DB, log *slog.Logger) *RequestRepository {
	return &RequestRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RequestRepository) CreateRequest(ctx context.Context, tx *sqlx.Tx, request *domain.BloodRequest) error {
	const op = "internal.repository.postgres.request.CreateRequest"

	query, args, err := r.sq.Insert("blood_requests").
		Columns(
			"id", "source", "requestor_id", "hospital_id", "blood_type", "donation_type",
			"units_needed", "units_fulfilled", "urgency", "status", "required_by",
			"patient_name", "patient_age", "medical_condition", "notes", "created_at", "updated_at",
		).
		Values(
			request.ID, request.Source, request.RequestorID, request.HospitalID, request.BloodType, request.DonationType,
			request.UnitsNeeded, request.UnitsFulfilled, request.Urgency, request.Status, request.RequiredBy,
			request.PatientName, request.PatientAge, request.MedicalCondition, request.Notes, request.CreatedAt, request.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return &apperrors.AlreadyExistsError{Entity: "request", ID: request.ID}
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: hospital with id '%s'", op, apperrors.ErrNotFound, request.HospitalID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *RequestRepository) GetRequestByID(ctx context.Context, ext sqlx.ExtContext, requestID string) (*domain.BloodRequest, error) {
	const op = "internal.repository.postgres.request.GetRequestByID"

	return r.getRequest(ctx, ext, op, requestID, "")
}

func (r *RequestRepository) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.BloodRequest, error) {
	const op = "internal.repository.postgres.request.GetRequestByIDWithLock"

	return r.getRequest(ctx, tx, op, requestID, "FOR UPDATE")
}

func (r *RequestRepository) getRequest(ctx context.Context, ext sqlx.ExtContext, op, requestID, suffix string) (*domain.BloodRequest, error) {
	builder := r.sq.Select(requestColumns...).
		From("blood_requests").
		Where(sq.Eq{"id": requestID})

	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var request domain.BloodRequest
	if err := sqlx.GetContext(ctx, ext, &request, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrNotFound, requestID)
		}

		return nil, fmt.Errorf("%s: failed to get request: %w", op, err)
	}

	return &request, nil
}

func (r *RequestRepository) GetRequestsByIDs(ctx context.Context, ext sqlx.ExtContext, requestIDs []string) ([]domain.BloodRequest, error) {
	const op = "internal.repository.postgres.request.GetRequestsByIDs"

	if len(requestIDs) == 0 {
		return []domain.BloodRequest{}, nil
	}

	query, args, err := r.sq.Select(requestColumns...).
		From("blood_requests").
		Where(sq.Eq{"id": requestIDs}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	requests := []domain.BloodRequest{}
	if err := sqlx.SelectContext(ctx, ext, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select requests: %w", op, err)
	}

	return requests, nil
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, tx *sqlx.Tx, request *domain.BloodRequest) error {
	const op = "internal.repository.postgres.request.UpdateRequest"

	query, args, err := r.sq.Update("blood_requests").
		Set("hospital_id", request.HospitalID).
		Set("status", request.Status).
		Set("units_fulfilled", request.UnitsFulfilled).
		Set("redirected_by", request.RedirectedBy).
		Set("redirected_to", request.RedirectedTo).
		Set("fulfilled_at", request.FulfilledAt).
		Set("updated_at", request.UpdatedAt).
		Where(sq.Eq{"id": request.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		switch pqCode(err) {
		case pqCheckViolation:
			return fmt.Errorf("%s: %w", op, apperrors.ErrOverAllocation)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: hospital with id '%s'", op, apperrors.ErrNotFound, request.HospitalID)
		}

		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrNotFound, request.ID)
	}

	return nil
}

func (r *RequestRepository) ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.BloodRequest, error) {
	const op = "internal.repository.postgres.request.ListRequests"

	builder := r.sq.Select(requestColumns...).
		From("blood_requests").
		OrderBy(urgencyOrder, "created_at DESC")

	if filter.HospitalID != "" {
		builder = builder.Where(sq.Eq{"hospital_id": filter.HospitalID})
	}

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	if filter.BloodType != "" {
		builder = builder.Where(sq.Eq{"blood_type": filter.BloodType})
	}

	if filter.Urgency != "" {
		builder = builder.Where(sq.Eq{"urgency": filter.Urgency})
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

	requests := []domain.BloodRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return requests, nil
}

func (r *RequestRepository) CreateRedirect(ctx context.Context, tx *sqlx.Tx, redirect *domain.RequestRedirect) error {
	const op = "internal.repository.postgres.request.CreateRedirect"

	query, args, err := r.sq.Insert("request_redirects").
		Columns("id", "request_id", "from_hospital_id", "to_hospital_id", "redirected_by", "redirected_at").
		Values(redirect.ID, redirect.RequestID, redirect.FromHospitalID, redirect.ToHospitalID, redirect.RedirectedBy, redirect.RedirectedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *RequestRepository) DemandSince(ctx context.Context, since time.Time) ([]domain.BloodTypeDemand, error) {
	const op = "internal.repository.postgres.request.DemandSince"

	query, args, err := r.sq.Select(
		"blood_type",
		"COUNT(*) AS total_requests",
		"COALESCE(SUM(units_needed), 0) AS units_needed",
		"COUNT(CASE WHEN status = 'fulfilled' THEN 1 END) AS fulfilled",
	).
		From("blood_requests").
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("blood_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	demand := []domain.BloodTypeDemand{}
	if err := r.db.SelectContext(ctx, &demand, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return demand, nil
}

func (r *RequestRepository) InsertMatches(ctx context.Context, tx *sqlx.Tx, requestID string, donorIDs []string, now time.Time) ([]string, error) {
	const op = "internal.repository.postgres.request.InsertMatches"

	if len(donorIDs) == 0 {
		return []string{}, nil
	}

	insertBuilder := r.sq.Insert("request_matches").
		Columns("request_id", "donor_id", "status", "notified_at")

	for _, donorID := range donorIDs {
		insertBuilder = insertBuilder.Values(requestID, donorID, domain.MatchNotified, now)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (request_id, donor_id) DO NOTHING RETURNING donor_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	inserted := []string{}
	if err := tx.SelectContext(ctx, &inserted, query, args...); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w: donor or request does not exist", op, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return inserted, nil
}

func (r *RequestRepository) GetMatch(ctx context.Context, ext sqlx.ExtContext, requestID, donorID string) (*domain.MatchEntry, error) {
	const op = "internal.repository.postgres.request.GetMatch"

	query, args, err := r.sq.Select(matchColumns...).
		From("request_matches").
		Where(sq.Eq{"request_id": requestID, "donor_id": donorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var match domain.MatchEntry
	if err := sqlx.GetContext(ctx, ext, &match, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: donor '%s' on request '%s'", op, apperrors.ErrNotFound, donorID, requestID)
		}

		return nil, fmt.Errorf("%s: failed to get match: %w", op, err)
	}

	return &match, nil
}

func (r *RequestRepository) RespondMatch(ctx context.Context, tx *sqlx.Tx, requestID, donorID string, status domain.MatchStatus, reason *string, now time.Time) (bool, error) {
	const op = "internal.repository.postgres.request.RespondMatch"

	query, args, err := r.sq.Update("request_matches").
		Set("status", status).
		Set("responded_at", now).
		Set("decline_reason", reason).
		Where(sq.Eq{"request_id": requestID, "donor_id": donorID, "status": domain.MatchNotified}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execOne(ctx, tx, op, query, args)
}

func (r *RequestRepository) MarkDonated(ctx context.Context, tx *sqlx.Tx, requestID, donorID string) (bool, error) {
	const op = "internal.repository.postgres.request.MarkDonated"

	query, args, err := r.sq.Update("request_matches").
		Set("status", domain.MatchDonated).
		Where(sq.Eq{"request_id": requestID, "donor_id": donorID, "status": domain.MatchAccepted}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execOne(ctx, tx, op, query, args)
}

func (r *RequestRepository) execOne(ctx context.Context, tx *sqlx.Tx, op, query string, args []interface{}) (bool, error) {
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

func (r *RequestRepository) ListMatches(ctx context.Context, ext sqlx.ExtContext, requestID string) ([]domain.MatchEntry, error) {
	const op = "internal.repository.postgres.request.ListMatches"

	query, args, err := r.sq.Select(matchColumns...).
		From("request_matches").
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("notified_at", "donor_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	matches := []domain.MatchEntry{}
	if err := sqlx.SelectContext(ctx, ext, &matches, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select matches: %w", op, err)
	}

	return matches, nil
}

func (r *RequestRepository) ListMatchesByDonor(ctx context.Context, donorID string, statuses []domain.MatchStatus) ([]domain.MatchEntry, error) {
	const op = "internal.repository.postgres.request.ListMatchesByDonor"

	builder := r.sq.Select(matchColumns...).
		From("request_matches").
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("notified_at DESC")

	if len(statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": statuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	matches := []domain.MatchEntry{}
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return matches, nil
}
