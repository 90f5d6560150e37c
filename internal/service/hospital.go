package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type HospitalResult struct {
	Hospital *domain.Hospital
	Events   []domain.Event
}

type HospitalService interface {
	RegisterHospital(ctx context.Context, actor domain.Actor, name, city string) (*domain.Hospital, error)
	ApproveHospital(ctx context.Context, actor domain.Actor, hospitalID string) (*HospitalResult, error)
	RejectHospital(ctx context.Context, actor domain.Actor, hospitalID, reason string) (*HospitalResult, error)
	SuspendHospital(ctx context.Context, actor domain.Actor, hospitalID, reason string) (*HospitalResult, error)
	GetHospital(ctx context.Context, actor domain.Actor, hospitalID string) (*domain.Hospital, error)
}

type HospitalServiceImpl struct {
	BaseService
	hospitals repository.HospitalRepository
}

func NewHospitalService(base BaseService, hospitals repository.HospitalRepository) *HospitalServiceImpl {
	return &HospitalServiceImpl{
		BaseService: base,
		hospitals:   hospitals,
	}
}

func (s *HospitalServiceImpl) RegisterHospital(ctx context.Context, actor domain.Actor, name, city string) (*domain.Hospital, error) {
	const op = "internal.service.hospital.RegisterHospital"
	log := s.log.With(slog.String("op", op), slog.String("actor_id", actor.ID))

	if err := requireRole(actor, domain.RoleHospitalAdmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" || strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: hospital name and city are required", apperrors.ErrValidation)
	}

	hospital := &domain.Hospital{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		City:        strings.TrimSpace(city),
		AdminUserID: actor.ID,
		Status:      domain.HospitalPending,
		CreatedAt:   s.now(),
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.hospitals.CreateHospital(ctx, tx, hospital)
	})
	if err != nil {
		return nil, err
	}

	log.Info("hospital registered", slog.String("hospital_id", hospital.ID))

	return hospital, nil
}

func (s *HospitalServiceImpl) ApproveHospital(ctx context.Context, actor domain.Actor, hospitalID string) (*HospitalResult, error) {
	const op = "internal.service.hospital.ApproveHospital"
	log := s.log.With(slog.String("op", op), slog.String("hospital_id", hospitalID))

	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var (
		hospital *domain.Hospital
		events   []domain.Event
	)

	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		hospital, err = s.hospitals.GetHospitalByIDWithLock(ctx, tx, hospitalID)
		if err != nil {
			return fmt.Errorf("%s: failed to get hospital with lock: %w", op, err)
		}

		if hospital.Status != domain.HospitalPending {
			return &apperrors.TransitionError{
				Entity: "hospital", From: string(hospital.Status), To: string(domain.HospitalApproved),
			}
		}

		hospital.Status = domain.HospitalApproved
		hospital.ApprovedAt = &now
		hospital.ApprovedBy = &actor.ID
		hospital.RejectedReason = nil

		if err := s.hospitals.UpdateHospitalStatus(ctx, tx, hospital); err != nil {
			return fmt.Errorf("%s: failed to update hospital: %w", op, err)
		}

		events = []domain.Event{domain.NewEvent(domain.EventHospitalApproved, hospital.ID, now, map[string]any{
			"hospital_id":   hospital.ID,
			"admin_user_id": hospital.AdminUserID,
			"approved_by":   actor.ID,
		})}

		return s.emit(ctx, tx, op, events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("hospital approved")

	return &HospitalResult{Hospital: hospital, Events: events}, nil
}

func (s *HospitalServiceImpl) RejectHospital(ctx context.Context, actor domain.Actor, hospitalID, reason string) (*HospitalResult, error) {
	const op = "internal.service.hospital.RejectHospital"
	log := s.log.With(slog.String("op", op), slog.String("hospital_id", hospitalID))

	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	var (
		hospital *domain.Hospital
		events   []domain.Event
	)

	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		hospital, err = s.hospitals.GetHospitalByIDWithLock(ctx, tx, hospitalID)
		if err != nil {
			return fmt.Errorf("%s: failed to get hospital with lock: %w", op, err)
		}

		if hospital.Status != domain.HospitalPending && hospital.Status != domain.HospitalSuspended {
			return &apperrors.TransitionError{
				Entity: "hospital", From: string(hospital.Status), To: string(domain.HospitalRejected),
			}
		}

		hospital.Status = domain.HospitalRejected
		hospital.RejectedReason = &reason

		if err := s.hospitals.UpdateHospitalStatus(ctx, tx, hospital); err != nil {
			return fmt.Errorf("%s: failed to update hospital: %w", op, err)
		}

		events = []domain.Event{domain.NewEvent(domain.EventHospitalRejected, hospital.ID, now, map[string]any{
			"hospital_id":   hospital.ID,
			"admin_user_id": hospital.AdminUserID,
			"reason":        reason,
		})}

		return s.emit(ctx, tx, op, events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("hospital rejected")

	return &HospitalResult{Hospital: hospital, Events: events}, nil
}

// SuspendHospital takes an approved hospital out of service. A suspended hospital fails every
// approved-hospital guard until an admin rejects it for good.
func (s *HospitalServiceImpl) SuspendHospital(ctx context.Context, actor domain.Actor, hospitalID, reason string) (*HospitalResult, error) {
	const op = "internal.service.hospital.SuspendHospital"
	log := s.log.With(slog.String("op", op), slog.String("hospital_id", hospitalID))

	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: suspension reason is required", apperrors.ErrValidation)
	}

	var (
		hospital *domain.Hospital
		events   []domain.Event
	)

	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		hospital, err = s.hospitals.GetHospitalByIDWithLock(ctx, tx, hospitalID)
		if err != nil {
			return fmt.Errorf("%s: failed to get hospital with lock: %w", op, err)
		}

		if hospital.Status != domain.HospitalApproved {
			return &apperrors.TransitionError{
				Entity: "hospital", From: string(hospital.Status), To: string(domain.HospitalSuspended),
			}
		}

		hospital.Status = domain.HospitalSuspended
		hospital.SuspendedAt = &now
		hospital.SuspendedReason = &reason

		if err := s.hospitals.UpdateHospitalStatus(ctx, tx, hospital); err != nil {
			return fmt.Errorf("%s: failed to update hospital: %w", op, err)
		}

		events = []domain.Event{domain.NewEvent(domain.EventHospitalSuspended, hospital.ID, now, map[string]any{
			"hospital_id":   hospital.ID,
			"admin_user_id": hospital.AdminUserID,
			"suspended_by":  actor.ID,
			"reason":        reason,
		})}

		return s.emit(ctx, tx, op, events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("hospital suspended")

	return &HospitalResult{Hospital: hospital, Events: events}, nil
}

func (s *HospitalServiceImpl) GetHospital(ctx context.Context, actor domain.Actor, hospitalID string) (*domain.Hospital, error) {
	const op = "internal.service.hospital.GetHospital"

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	hospital, err := s.hospitals.GetHospitalByID(ctx, s.db, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get hospital: %w", op, err)
	}

	return hospital, nil
}

// approvedHospital loads a hospital inside tx and fails unless it is approved.
func approvedHospital(ctx context.Context, tx *sqlx.Tx, hospitals repository.HospitalRepository, hospitalID string) (*domain.Hospital, error) {
	hospital, err := hospitals.GetHospitalByID(ctx, tx, hospitalID)
	if err != nil {
		return nil, err
	}

	if !hospital.IsApproved() {
		return nil, fmt.Errorf("%w: '%s'", apperrors.ErrHospitalNotApproved, hospitalID)
	}

	return hospital, nil
}
