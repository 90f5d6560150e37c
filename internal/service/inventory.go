package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/metrics"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AddUnitsInput struct {
	HospitalID     string
	BloodType      domain.BloodType
	DonationType   domain.DonationType
	UnitsCount     int
	CollectionDate time.Time
	ExpiryDate     time.Time
	BatchNumber    *string
}

type InventoryView struct {
	Units   []domain.InventoryUnit
	Summary []domain.InventorySummary
}

type InventoryService interface {
	AddUnits(ctx context.Context, actor domain.Actor, in AddUnitsInput) (*domain.InventoryUnit, error)
	Discard(ctx context.Context, actor domain.Actor, unitID, reason string) (*domain.InventoryUnit, error)
	ListUnits(ctx context.Context, actor domain.Actor, hospitalID string, filter domain.InventoryFilter) (*InventoryView, error)
	ExpireSweep(ctx context.Context, now time.Time) ([]string, error)
}

type InventoryServiceImpl struct {
	BaseService
	inventory repository.InventoryRepository
	hospitals repository.HospitalRepository
}

func NewInventoryService(
	base BaseService,
	inventory repository.InventoryRepository,
	hospitals repository.HospitalRepository,
) *InventoryServiceImpl {
	return &InventoryServiceImpl{
		BaseService: base,
		inventory:   inventory,
		hospitals:   hospitals,
	}
}

func (s *InventoryServiceImpl) AddUnits(ctx context.Context, actor domain.Actor, in AddUnitsInput) (*domain.InventoryUnit, error) {
	const op = "internal.service.inventory.AddUnits"
	log := s.log.With(slog.String("op", op), slog.String("hospital_id", in.HospitalID))

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	switch {
	case !in.BloodType.Valid():
		return nil, fmt.Errorf("%w: unknown blood type '%s'", apperrors.ErrValidation, in.BloodType)
	case !in.DonationType.Valid():
		return nil, fmt.Errorf("%w: unknown donation type '%s'", apperrors.ErrValidation, in.DonationType)
	case in.UnitsCount < 1:
		return nil, fmt.Errorf("%w: units count must be at least 1", apperrors.ErrValidation)
	case !in.ExpiryDate.After(in.CollectionDate):
		return nil, fmt.Errorf("%w: expiry date must be after collection date", apperrors.ErrValidation)
	}

	now := s.now()
	unit := &domain.InventoryUnit{
		ID:             uuid.NewString(),
		HospitalID:     in.HospitalID,
		BloodType:      in.BloodType,
		DonationType:   in.DonationType,
		UnitsCount:     in.UnitsCount,
		CollectionDate: in.CollectionDate.UTC(),
		ExpiryDate:     in.ExpiryDate.UTC(),
		Status:         domain.InventoryAvailable,
		BatchNumber:    in.BatchNumber,
		CreatedAt:      now,
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		hospital, err := approvedHospital(ctx, tx, s.hospitals, in.HospitalID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := requireHospitalStaff(actor, hospital, false); err != nil {
			return err
		}

		return s.inventory.CreateUnit(ctx, tx, unit)
	})
	if err != nil {
		return nil, err
	}

	log.Info("inventory unit added",
		slog.String("unit_id", unit.ID),
		slog.String("blood_type", string(unit.BloodType)),
		slog.Int("units", unit.UnitsCount),
	)

	return unit, nil
}

func (s *InventoryServiceImpl) Discard(ctx context.Context, actor domain.Actor, unitID, reason string) (*domain.InventoryUnit, error) {
	const op = "internal.service.inventory.Discard"
	log := s.log.With(slog.String("op", op), slog.String("unit_id", unitID))

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var unit *domain.InventoryUnit

	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		units, err := s.inventory.GetUnitsWithLock(ctx, tx, []string{unitID})
		if err != nil {
			return fmt.Errorf("%s: failed to get unit with lock: %w", op, err)
		}

		if len(units) == 0 {
			return fmt.Errorf("%s: unit '%s': %w", op, unitID, apperrors.ErrNotFound)
		}

		unit = &units[0]

		hospital, err := s.hospitals.GetHospitalByID(ctx, tx, unit.HospitalID)
		if err != nil {
			return fmt.Errorf("%s: failed to get hospital: %w", op, err)
		}

		if err := requireHospitalStaff(actor, hospital, true); err != nil {
			return err
		}

		if unit.Status.IsTerminal() {
			return &apperrors.TransitionError{
				Entity: "inventory unit", From: string(unit.Status), To: string(domain.InventoryDiscarded),
			}
		}

		if unit.Status == domain.InventoryReserved {
			return fmt.Errorf("%s: %w: unit '%s' is reserved for a request and must be released first",
				op, apperrors.ErrConflict, unitID)
		}

		discarded, err := s.inventory.DiscardUnit(ctx, tx, unitID, reason, now)
		if err != nil {
			return fmt.Errorf("%s: failed to discard unit: %w", op, err)
		}

		if !discarded {
			return fmt.Errorf("%s: %w: unit '%s' changed concurrently", op, apperrors.ErrConflict, unitID)
		}

		unit.Status = domain.InventoryDiscarded
		unit.DiscardedAt = &now
		unit.DiscardReason = &reason

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("inventory unit discarded", slog.String("reason", reason))

	return unit, nil
}

func (s *InventoryServiceImpl) ListUnits(
	ctx context.Context, actor domain.Actor, hospitalID string, filter domain.InventoryFilter,
) (*InventoryView, error) {
	const op = "internal.service.inventory.ListUnits"

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	hospital, err := s.hospitals.GetHospitalByID(ctx, s.db, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get hospital: %w", op, err)
	}

	if err := requireHospitalStaff(actor, hospital, true); err != nil {
		return nil, err
	}

	units, err := s.inventory.ListUnits(ctx, hospitalID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list units: %w", op, err)
	}

	summary, err := s.inventory.Summary(ctx, hospitalID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to summarize units: %w", op, err)
	}

	return &InventoryView{Units: units, Summary: summary}, nil
}

// ExpireSweep retires available units whose expiry date has passed. The status
// predicate is part of the UPDATE, so overlapping runs touch each unit once.
func (s *InventoryServiceImpl) ExpireSweep(ctx context.Context, now time.Time) ([]string, error) {
	const op = "internal.service.inventory.ExpireSweep"
	log := s.log.With(slog.String("op", op), slog.Time("now", now))

	expired, err := s.inventory.ExpireUnits(ctx, s.db, now)
	if err != nil {
		metrics.SweepItemsTotal.WithLabelValues("expiry", "failed").Inc()
		return nil, fmt.Errorf("%s: failed to expire units: %w", op, err)
	}

	metrics.SweepItemsTotal.WithLabelValues("expiry", "expired").Add(float64(len(expired)))

	log.Info("expiry sweep finished", slog.Int("expired", len(expired)))

	return expired, nil
}

// reserveUnits claims unitIDs for request inside tx. Every unit must exist, belong to the
// request's hospital, be available and unexpired, and fit the request under mode; otherwise
// nothing is reserved. It returns the total units_count claimed.
func reserveUnits(
	ctx context.Context,
	tx *sqlx.Tx,
	inventory repository.InventoryRepository,
	request *domain.BloodRequest,
	unitIDs []string,
	mode domain.MatchMode,
	now time.Time,
) (int, error) {
	if len(unitIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one inventory unit is required", apperrors.ErrValidation)
	}

	seen := make(map[string]struct{}, len(unitIDs))
	for _, id := range unitIDs {
		if _, ok := seen[id]; ok {
			return 0, fmt.Errorf("%w: unit '%s' is listed twice", apperrors.ErrValidation, id)
		}

		seen[id] = struct{}{}
	}

	units, err := inventory.GetUnitsWithLock(ctx, tx, unitIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to lock units: %w", err)
	}

	found := make(map[string]domain.InventoryUnit, len(units))
	for _, unit := range units {
		found[unit.ID] = unit
	}

	total := 0

	for _, id := range unitIDs {
		unit, ok := found[id]
		if !ok {
			metrics.ReservationsTotal.WithLabelValues("rejected").Inc()
			return 0, fmt.Errorf("inventory unit '%s': %w", id, apperrors.ErrNotFound)
		}

		if reason := unitMismatch(&unit, request, mode, now); reason != "" {
			metrics.ReservationsTotal.WithLabelValues("rejected").Inc()
			return 0, &apperrors.UnitUnavailableError{UnitID: id, Reason: reason}
		}

		total += unit.UnitsCount
	}

	reserved, err := inventory.ReserveUnits(ctx, tx, unitIDs, request.ID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve units: %w", err)
	}

	if reserved != int64(len(unitIDs)) {
		metrics.ReservationsTotal.WithLabelValues("conflict").Inc()
		return 0, fmt.Errorf("%w: %d of %d units could be reserved", apperrors.ErrConflict, reserved, len(unitIDs))
	}

	metrics.ReservationsTotal.WithLabelValues("reserved").Inc()

	return total, nil
}

func unitMismatch(unit *domain.InventoryUnit, request *domain.BloodRequest, mode domain.MatchMode, now time.Time) string {
	switch {
	case unit.HospitalID != request.HospitalID:
		return "belongs to another hospital"
	case unit.Status != domain.InventoryAvailable:
		return fmt.Sprintf("status is %s", unit.Status)
	case !unit.ExpiryDate.After(now):
		return "unit is expired"
	case !mode.Accepts(unit.BloodType, request.BloodType):
		return fmt.Sprintf("blood type %s does not match %s", unit.BloodType, request.BloodType)
	case unit.DonationType != request.DonationType:
		return fmt.Sprintf("donation type %s does not match %s", unit.DonationType, request.DonationType)
	}

	return ""
}
