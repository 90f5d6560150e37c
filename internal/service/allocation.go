package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/metrics"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type AllocationService interface {
	AssignInventory(ctx context.Context, actor domain.Actor, requestID string, unitIDs []string) (*RequestResult, error)
}

type AllocationServiceImpl struct {
	BaseService
	policy    Policy
	requests  repository.RequestRepository
	inventory repository.InventoryRepository
	hospitals repository.HospitalRepository
}

func NewAllocationService(
	base BaseService,
	policy Policy,
	requests repository.RequestRepository,
	inventory repository.InventoryRepository,
	hospitals repository.HospitalRepository,
) *AllocationServiceImpl {
	return &AllocationServiceImpl{
		BaseService: base,
		policy:      policy,
		requests:    requests,
		inventory:   inventory,
		hospitals:   hospitals,
	}
}

// AssignInventory reserves units for a request and advances its status in one transaction.
// Either every unit is reserved and the request updated, or nothing changes.
func (s *AllocationServiceImpl) AssignInventory(ctx context.Context, actor domain.Actor, requestID string, unitIDs []string) (*RequestResult, error) {
	const op = "internal.service.allocation.AssignInventory"
	log := s.log.With(slog.String("op", op), slog.String("request_id", requestID))

	if err := requireRole(actor, domain.RoleHospitalAdmin); err != nil {
		return nil, err
	}

	result := &RequestResult{}
	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		request, err := s.requests.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("%s: failed to get request with lock: %w", op, err)
		}

		hospital, err := s.hospitals.GetHospitalByID(ctx, tx, request.HospitalID)
		if err != nil {
			return fmt.Errorf("%s: failed to get hospital: %w", op, err)
		}

		if err := requireHospitalStaff(actor, hospital, false); err != nil {
			return err
		}

		from := request.Status
		if err := from.ValidateTransition(domain.RequestConfirmedByHospital); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if remaining := request.RemainingUnits(); remaining != nil && *remaining == 0 {
			return fmt.Errorf("%s: %w", op, apperrors.ErrOverAllocation)
		}

		claimed, err := reserveUnits(ctx, tx, s.inventory, request, unitIDs, s.policy.InventoryMode, now)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		request.UnitsFulfilled += claimed
		if request.UnitsNeeded != nil && request.UnitsFulfilled > *request.UnitsNeeded {
			return fmt.Errorf("%s: %w: %d units would exceed the %d needed", op, apperrors.ErrOverAllocation,
				request.UnitsFulfilled, *request.UnitsNeeded)
		}

		request.Status = domain.ProgressStatus(request.UnitsNeeded, request.UnitsFulfilled)
		request.UpdatedAt = now

		if request.Status == domain.RequestFulfilled {
			result.ConsumedUnitIDs, err = fulfill(ctx, tx, s.inventory, s.hospitals, request, now)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		if err := s.requests.UpdateRequest(ctx, tx, request); err != nil {
			return fmt.Errorf("%s: failed to update request: %w", op, err)
		}

		result.Request = request
		result.Events = []domain.Event{
			domain.NewEvent(domain.EventRequestMatched, request.ID, now, map[string]any{
				"request_id":      request.ID,
				"hospital_id":     request.HospitalID,
				"requestor_id":    request.RequestorID,
				"unit_ids":        unitIDs,
				"units_assigned":  claimed,
				"units_fulfilled": request.UnitsFulfilled,
			}),
			domain.StatusUpdatedEvent(request, from, now),
		}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		log.Warn("inventory assignment rejected", slog.Int("units", len(unitIDs)), sl.Err(err))
		return nil, err
	}

	metrics.ObserveTransition(string(result.Request.Status))

	log.Info("inventory assigned",
		slog.Int("units", len(unitIDs)),
		slog.Int("units_fulfilled", result.Request.UnitsFulfilled),
		slog.String("status", string(result.Request.Status)),
	)

	return result, nil
}
