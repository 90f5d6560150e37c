package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

type DonationRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.DonationRepository = (*DonationRepository)(nil)

func NewDonationRepository(db *sqlx.DB, log *slog.Logger) *DonationRepository {
	return &DonationRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *DonationRepository) CreateDonation(ctx context.Context, tx *sqlx.Tx, donation *domain.Donation) error {
	const op = "internal.repository.postgres.donation.CreateDonation"

	query, args, err := r.sq.Insert("donations").
		Columns(
			"id", "donor_id", "hospital_id", "request_id", "blood_type", "donation_type",
			"quantity_ml", "donation_date", "points_awarded", "created_at",
		).
		Values(
			donation.ID, donation.DonorID, donation.HospitalID, donation.RequestID, donation.BloodType, donation.DonationType,
			donation.QuantityML, donation.DonationDate, donation.PointsAwarded, donation.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, apperrors.ErrDonationLogged)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: donor, hospital or request does not exist", op, apperrors.ErrNotFound)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *DonationRepository) ExistsForRequest(ctx context.Context, ext sqlx.ExtContext, donorID, requestID string) (bool, error) {
	const op = "internal.repository.postgres.donation.ExistsForRequest"

	query, args, err := r.sq.Select("1").
		Prefix("SELECT EXISTS (").
		From("donations").
		Where(sq.Eq{"donor_id": donorID, "request_id": requestID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var exists bool
	if err := sqlx.GetContext(ctx, ext, &exists, query, args...); err != nil {
		return false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return exists, nil
}

func (r *DonationRepository) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	const op = "internal.repository.postgres.donation.ListByDonor"

	query, args, err := r.sq.Select(
		"id", "donor_id", "hospital_id", "request_id", "blood_type", "donation_type",
		"quantity_ml", "donation_date", "points_awarded", "created_at",
	).
		From("donations").
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("donation_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	donations := []domain.Donation{}
	if err := r.db.SelectContext(ctx, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return donations, nil
}
