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

var unitColumns = []string{
	"id", "hospital_id", "blood_type", "donation_type", "units_count",
	"collection_date", "expiry_date", "status", "reserved_for_request_id",
	"reserved_at", "used_at", "discarded_at", "discard_reason", "batch_number", "created_at",
}

type InventoryRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

func NewInventoryRepository(db *sqlx.DB, log *slog.Logger) *InventoryRepository {
	return &InventoryRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *InventoryRepository) CreateUnit(ctx context.Context, tx *sqlx.Tx, unit *domain.InventoryUnit) error {
	const op = "internal.repository.postgres.inventory.CreateUnit"

	query, args, err := r.sq.Insert("inventory_units").
		Columns(
			"id", "hospital_id", "blood_type", "donation_type", "units_count",
			"collection_date", "expiry_date", "status", "batch_number", "created_at",
		).
		Values(
			unit.ID, unit.HospitalID, unit.BloodType, unit.DonationType, unit.UnitsCount,
			unit.CollectionDate, unit.ExpiryDate, unit.Status, unit.BatchNumber, unit.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		switch pqCode(err) {
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: hospital with id '%s'", op, apperrors.ErrNotFound, unit.HospitalID)
		case pqCheckViolation:
			return fmt.Errorf("%s: %w: unit violates inventory constraints", op, apperrors.ErrValidation)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *InventoryRepository) GetUnitByID(ctx context.Context, ext sqlx.ExtContext, unitID string) (*domain.InventoryUnit, error) {
	const op = "internal.repository.postgres.inventory.GetUnitByID"

	query, args, err := r.sq.Select(unitColumns...).
		From("inventory_units").
		Where(sq.Eq{"id": unitID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var unit domain.InventoryUnit
	if err := sqlx.GetContext(ctx, ext, &unit, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: inventory unit with id '%s'", op, apperrors.ErrNotFound, unitID)
		}

		return nil, fmt.Errorf("%s: failed to get inventory unit: %w", op, err)
	}

	return &unit, nil
}

func (r *InventoryRepository) GetUnitsWithLock(ctx context.Context, tx *sqlx.Tx, unitIDs []string) ([]domain.InventoryUnit, error) {
	const op = "internal.repository.postgres.inventory.GetUnitsWithLock"

	if len(unitIDs) == 0 {
		return []domain.InventoryUnit{}, nil
	}

	// Locking in id order keeps two overlapping batches from deadlocking.
	query, args, err := r.sq.Select(unitColumns...).
		From("inventory_units").
		Where(sq.Eq{"id": unitIDs}).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	units := []domain.InventoryUnit{}
	if err := tx.SelectContext(ctx, &units, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select units: %w", op, err)
	}

	return units, nil
}

func (r *InventoryRepository) ReserveUnits(ctx context.Context, tx *sqlx.Tx, unitIDs []string, requestID string, now time.Time) (int64, error) {
	const op = "internal.repository.postgres.inventory.ReserveUnits"

	query, args, err := r.sq.Update("inventory_units").
		Set("status", domain.InventoryReserved).
		Set("reserved_for_request_id", requestID).
		Set("reserved_at", now).
		Where(sq.Eq{"id": unitIDs, "status": domain.InventoryAvailable}).
		Where(sq.Gt{"expiry_date": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return rows, nil
}

func (r *InventoryRepository) ReleaseUnits(ctx context.Context, tx *sqlx.Tx, requestID string) ([]string, error) {
	const op = "internal.repository.postgres.inventory.ReleaseUnits"

	query, args, err := r.sq.Update("inventory_units").
		Set("status", domain.InventoryAvailable).
		Set("reserved_for_request_id", nil).
		Set("reserved_at", nil).
		Where(sq.Eq{"reserved_for_request_id": requestID, "status": domain.InventoryReserved}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	ids := []string{}
	if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return ids, nil
}

func (r *InventoryRepository) ConsumeUnits(ctx context.Context, tx *sqlx.Tx, requestID string, now time.Time) ([]string, error) {
	const op = "internal.repository.postgres.inventory.ConsumeUnits"

	query, args, err := r.sq.Update("inventory_units").
		Set("status", domain.InventoryUsed).
		Set("used_at", now).
		Where(sq.Eq{"reserved_for_request_id": requestID, "status": domain.InventoryReserved}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	ids := []string{}
	if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return ids, nil
}

func (r *InventoryRepository) ExpireUnits(ctx context.Context, ext sqlx.ExtContext, now time.Time) ([]string, error) {
	const op = "internal.repository.postgres.inventory.ExpireUnits"

	query, args, err := r.sq.Update("inventory_units").
		Set("status", domain.InventoryExpired).
		Where(sq.Eq{"status": domain.InventoryAvailable}).
		Where(sq.LtOrEq{"expiry_date": now}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	ids := []string{}
	if err := sqlx.SelectContext(ctx, ext, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return ids, nil
}

func (r *InventoryRepository) DiscardUnit(ctx context.Context, tx *sqlx.Tx, unitID string, reason string, now time.Time) (bool, error) {
	const op = "internal.repository.postgres.inventory.DiscardUnit"

	query, args, err := r.sq.Update("inventory_units").
		Set("status", domain.InventoryDiscarded).
		Set("discarded_at", now).
		Set("discard_reason", reason).
		Where(sq.Eq{"id": unitID, "status": domain.InventoryAvailable}).
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

func (r *InventoryRepository) ListUnits(ctx context.Context, hospitalID string, filter domain.InventoryFilter) ([]domain.InventoryUnit, error) {
	const op = "internal.repository.postgres.inventory.ListUnits"

	builder := r.sq.Select(unitColumns...).
		From("inventory_units").
		Where(sq.Eq{"hospital_id": hospitalID}).
		OrderBy("created_at DESC", "id")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	if filter.BloodType != "" {
		builder = builder.Where(sq.Eq{"blood_type": filter.BloodType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	units := []domain.InventoryUnit{}
	if err := r.db.SelectContext(ctx, &units, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return units, nil
}

func (r *InventoryRepository) ListUnitIDsByRequest(ctx context.Context, ext sqlx.ExtContext, requestID string) ([]string, error) {
	const op = "internal.repository.postgres.inventory.ListUnitIDsByRequest"

	query, args, err := r.sq.Select("id").
		From("inventory_units").
		Where(sq.Eq{
			"reserved_for_request_id": requestID,
			"status":                  []domain.InventoryStatus{domain.InventoryReserved, domain.InventoryUsed},
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	ids := []string{}
	if err := sqlx.SelectContext(ctx, ext, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select unit ids: %w", op, err)
	}

	return ids, nil
}

func (r *InventoryRepository) Summary(ctx context.Context, hospitalID string, now time.Time) ([]domain.InventorySummary, error) {
	const op = "internal.repository.postgres.inventory.Summary"
	log := r.log.With(slog.String("op", op), slog.String("hospital_id", hospitalID))

	builder := r.sq.Select("blood_type", "COALESCE(SUM(units_count), 0) AS units").
		From("inventory_units").
		Where(sq.Eq{"status": domain.InventoryAvailable}).
		Where(sq.Gt{"expiry_date": now}).
		GroupBy("blood_type").
		OrderBy("blood_type")

	if hospitalID != "" {
		builder = builder.Where(sq.Eq{"hospital_id": hospitalID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	summary := []domain.InventorySummary{}
	if err := r.db.SelectContext(ctx, &summary, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	log.Debug("inventory summary computed", slog.Int("blood_types", len(summary)))

	return summary, nil
}
