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
	"github.com/lib/pq"
)

var donorColumns = []string{
	"id", "blood_type", "is_eligible", "last_donation_date", "next_eligible_date",
	"preferred_donation_type", "total_donations", "points", "badges",
	"is_available", "notifications_enabled", "city", "created_at", "updated_at",
}

type DonorRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.DonorRepository = (*DonorRepository)(nil)

func NewDonorRepository(db *sqlx.DB, log *slog.Logger) *DonorRepository {
	return &DonorRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *DonorRepository) CreateDonor(ctx context.Context, tx *sqlx.Tx, donor *domain.Donor) error {
	const op = "internal.repository.postgres.donor.CreateDonor"

	badges := donor.Badges
	if badges == nil {
		badges = pq.StringArray{}
	}

	query, args, err := r.sq.Insert("donors").
		Columns(
			"id", "blood_type", "is_eligible", "preferred_donation_type", "badges",
			"is_available", "notifications_enabled", "city", "created_at", "updated_at",
		).
		Values(
			donor.ID, donor.BloodType, donor.IsEligible, donor.PreferredDonationType, badges,
			donor.IsAvailable, donor.NotificationsEnabled, donor.City, donor.CreatedAt, donor.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqUniqueViolation {
			return &apperrors.AlreadyExistsError{Entity: "donor", ID: donor.ID}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *DonorRepository) GetDonorByID(ctx context.Context, ext sqlx.ExtContext, donorID string) (*domain.Donor, error) {
	const op = "internal.repository.postgres.donor.GetDonorByID"

	return r.getDonor(ctx, ext, op, donorID, "")
}

func (r *DonorRepository) GetDonorByIDWithLock(ctx context.Context, tx *sqlx.Tx, donorID string) (*domain.Donor, error) {
	const op = "internal.repository.postgres.donor.GetDonorByIDWithLock"

	return r.getDonor(ctx, tx, op, donorID, "FOR UPDATE")
}

func (r *DonorRepository) getDonor(ctx context.Context, ext sqlx.ExtContext, op, donorID, suffix string) (*domain.Donor, error) {
	builder := r.sq.Select(donorColumns...).
		From("donors").
		Where(sq.Eq{"id": donorID})

	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var donor domain.Donor
	if err := sqlx.GetContext(ctx, ext, &donor, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: donor with id '%s'", op, apperrors.ErrNotFound, donorID)
		}

		return nil, fmt.Errorf("%s: failed to get donor: %w", op, err)
	}

	return &donor, nil
}

func (r *DonorRepository) GetDonorsByIDs(ctx context.Context, ext sqlx.ExtContext, donorIDs []string) ([]domain.Donor, error) {
	const op = "internal.repository.postgres.donor.GetDonorsByIDs"

	if len(donorIDs) == 0 {
		return []domain.Donor{}, nil
	}

	query, args, err := r.sq.Select(donorColumns...).
		From("donors").
		Where(sq.Eq{"id": donorIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	donors := []domain.Donor{}
	if err := sqlx.SelectContext(ctx, ext, &donors, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select donors: %w", op, err)
	}

	return donors, nil
}

func (r *DonorRepository) ApplyDonation(ctx context.Context, tx *sqlx.Tx, donorID string, applied repository.DonationApplied) (int, error) {
	const op = "internal.repository.postgres.donor.ApplyDonation"

	query, args, err := r.sq.Update("donors").
		Set("is_eligible", false).
		Set("last_donation_date", applied.DonationDate).
		Set("next_eligible_date", applied.NextEligibleDate).
		Set("total_donations", sq.Expr("total_donations + 1")).
		Set("points", sq.Expr("points + ?", applied.Points)).
		Set("updated_at", applied.UpdatedAt).
		Where(sq.Eq{"id": donorID}).
		Suffix("RETURNING total_donations").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var total int
	if err := tx.GetContext(ctx, &total, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w: donor with id '%s'", op, apperrors.ErrNotFound, donorID)
		}

		return 0, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return total, nil
}

func (r *DonorRepository) AddBadge(ctx context.Context, tx *sqlx.Tx, donorID string, badge string) (bool, error) {
	const op = "internal.repository.postgres.donor.AddBadge"

	query, args, err := r.sq.Update("donors").
		Set("badges", sq.Expr("array_append(badges, ?)", badge)).
		Where(sq.Eq{"id": donorID}).
		Where(sq.Expr("NOT (? = ANY(badges))", badge)).
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

func (r *DonorRepository) SetEligibility(ctx context.Context, ext sqlx.ExtContext, donorID string, eligible bool, now time.Time) (bool, error) {
	const op = "internal.repository.postgres.donor.SetEligibility"

	builder := r.sq.Update("donors").
		Set("is_eligible", eligible).
		Set("updated_at", now).
		Where(sq.Eq{"id": donorID}).
		Where(sq.NotEq{"is_eligible": eligible})

	// The eligibility predicate is repeated here so a stale caller never flips a donor
	// whose next eligible date moved in the meantime.
	if eligible {
		builder = builder.Where(sq.Or{
			sq.Eq{"next_eligible_date": nil},
			sq.LtOrEq{"next_eligible_date": now},
		})
	} else {
		builder = builder.Where(sq.Gt{"next_eligible_date": now})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return rows == 1, nil
}

func (r *DonorRepository) ListRestorationCandidates(
	ctx context.Context,
	now time.Time,
	after *repository.RestorationCandidate,
	limit uint64,
) ([]repository.RestorationCandidate, error) {
	const op = "internal.repository.postgres.donor.ListRestorationCandidates"

	builder := r.sq.Select("id", "next_eligible_date").
		From("donors").
		Where(sq.Eq{"is_eligible": false}).
		Where(sq.LtOrEq{"next_eligible_date": now}).
		OrderBy("next_eligible_date", "id")

	if after != nil {
		builder = builder.Where(sq.Expr("(next_eligible_date, id) > (?, ?)", after.NextEligibleDate, after.ID))
	}

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	candidates := []repository.RestorationCandidate{}
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return candidates, nil
}

func (r *DonorRepository) FindCandidates(ctx context.Context, ext sqlx.ExtContext, filter repository.DonorCandidateFilter) ([]domain.Donor, error) {
	const op = "internal.repository.postgres.donor.FindCandidates"

	bloodTypes := make([]string, len(filter.BloodTypes))
	for i, bt := range filter.BloodTypes {
		bloodTypes[i] = string(bt)
	}

	builder := r.sq.Select(donorColumns...).
		From("donors").
		Where(sq.Eq{"blood_type": bloodTypes, "is_available": true, "notifications_enabled": true}).
		Where(sq.Or{
			sq.Eq{"next_eligible_date": nil},
			sq.LtOrEq{"next_eligible_date": filter.EligibleAt},
		})

	if filter.ExcludeRequestID != "" {
		builder = builder.Where(
			"NOT EXISTS (SELECT 1 FROM request_matches m WHERE m.donor_id = donors.id AND m.request_id = ?)",
			filter.ExcludeRequestID,
		)
	}

	builder = builder.OrderBy("last_donation_date ASC NULLS FIRST", "id")

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	donors := []domain.Donor{}
	if err := sqlx.SelectContext(ctx, ext, &donors, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select candidates: %w", op, err)
	}

	return donors, nil
}

func (r *DonorRepository) ListDonorIDsForBroadcast(ctx context.Context, ext sqlx.ExtContext, bloodTypes []string, city *string) ([]string, error) {
	const op = "internal.repository.postgres.donor.ListDonorIDsForBroadcast"

	builder := r.sq.Select("id").
		From("donors").
		Where(sq.Eq{"notifications_enabled": true}).
		OrderBy("id")

	if len(bloodTypes) > 0 {
		builder = builder.Where(sq.Eq{"blood_type": bloodTypes})
	}

	if city != nil && *city != "" {
		builder = builder.Where(sq.ILike{"city": *city})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	ids := []string{}
	if err := sqlx.SelectContext(ctx, ext, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select donor ids: %w", op, err)
	}

	return ids, nil
}
