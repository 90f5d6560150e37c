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
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Policy holds the matching modes and limits shared by the request-facing services.
type Policy struct {
	InventoryMode domain.MatchMode
	DonorMode     domain.MatchMode
	NotifyLimit   uint64
}

func DefaultPolicy() Policy {
	return Policy{
		InventoryMode: domain.MatchExact,
		DonorMode:     domain.MatchCompatible,
		NotifyLimit:   50,
	}
}

type CreateRequestInput struct {
	HospitalID       string
	BloodType        domain.BloodType
	DonationType     domain.DonationType
	UnitsNeeded      *int
	Urgency          domain.Urgency
	RequiredBy       *time.Time
	PatientName      *string
	PatientAge       *int
	MedicalCondition *string
	Notes            *string
}

// RequestResult is a changed request plus the events and inventory moves the change produced.
type RequestResult struct {
	Request         *domain.BloodRequest
	Events          []domain.Event
	ReleasedUnitIDs []string
	ConsumedUnitIDs []string
}

// RequestView is what GetRequest returns: the full request for its owners, or the
// sanitized projection for donors.
type RequestView struct {
	Request   *domain.BloodRequest
	DonorView *domain.DonorRequestView
}

type RequestService interface {
	CreateRequest(ctx context.Context, actor domain.Actor, in CreateRequestInput) (*RequestResult, error)
	GetRequest(ctx context.Context, actor domain.Actor, requestID string) (*RequestView, error)
	ListRequests(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.BloodRequest, error)
	Cancel(ctx context.Context, actor domain.Actor, requestID string) (*RequestResult, error)
	MarkUnavailable(ctx context.Context, actor domain.Actor, requestID, reason string) (*RequestResult, error)
	ConfirmFulfillment(ctx context.Context, actor domain.Actor, requestID string) (*RequestResult, error)
	Redirect(ctx context.Context, actor domain.Actor, requestID, targetHospitalID string) (*RequestResult, error)
}

type RequestServiceImpl struct {
	BaseService
	requests  repository.RequestRepository
	matches   repository.MatchRepository
	inventory repository.InventoryRepository
	hospitals repository.HospitalRepository
}

func NewRequestService(
	base BaseService,
	requests repository.RequestRepository,
	matches repository.MatchRepository,
	inventory repository.InventoryRepository,
	hospitals repository.HospitalRepository,
) *RequestServiceImpl {
	return &RequestServiceImpl{
		BaseService: base,
		requests:    requests,
		matches:     matches,
		inventory:   inventory,
		hospitals:   hospitals,
	}
}

func (s *RequestServiceImpl) CreateRequest(ctx context.Context, actor domain.Actor, in CreateRequestInput) (*RequestResult, error) {
	const op = "internal.service.request.CreateRequest"
	log := s.log.With(slog.String("op", op), slog.String("requestor_id", actor.ID))

	if err := requireRole(actor, domain.RoleDonor, domain.RoleRecipient); err != nil {
		return nil, err
	}

	source := domain.SourceDonor
	if actor.Role == domain.RoleRecipient {
		source = domain.SourceRecipient
	}

	if err := validateCreateRequest(source, in); err != nil {
		return nil, err
	}

	now := s.now()
	request := &domain.BloodRequest{
		ID:               uuid.NewString(),
		Source:           source,
		RequestorID:      actor.ID,
		HospitalID:       in.HospitalID,
		BloodType:        in.BloodType,
		DonationType:     in.DonationType,
		UnitsNeeded:      in.UnitsNeeded,
		Urgency:          in.Urgency,
		Status:           domain.RequestPending,
		RequiredBy:       in.RequiredBy,
		PatientName:      in.PatientName,
		PatientAge:       in.PatientAge,
		MedicalCondition: in.MedicalCondition,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var events []domain.Event

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if _, err := approvedHospital(ctx, tx, s.hospitals, in.HospitalID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.requests.CreateRequest(ctx, tx, request); err != nil {
			return err
		}

		payload := map[string]any{
			"request_id":    request.ID,
			"source":        string(request.Source),
			"hospital_id":   request.HospitalID,
			"blood_type":    string(request.BloodType),
			"donation_type": string(request.DonationType),
			"urgency":       string(request.Urgency),
		}
		if request.UnitsNeeded != nil {
			payload["units_needed"] = *request.UnitsNeeded
		}

		events = []domain.Event{domain.NewEvent(domain.EventRequestCreated, request.ID, now, payload)}

		return s.emit(ctx, tx, op, events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("blood request created",
		slog.String("request_id", request.ID),
		slog.String("hospital_id", request.HospitalID),
		slog.String("urgency", string(request.Urgency)),
	)

	return &RequestResult{Request: request, Events: events}, nil
}

func validateCreateRequest(source domain.RequestSource, in CreateRequestInput) error {
	switch {
	case !in.BloodType.Valid():
		return fmt.Errorf("%w: unknown blood type '%s'", apperrors.ErrValidation, in.BloodType)
	case !in.DonationType.Valid():
		return fmt.Errorf("%w: unknown donation type '%s'", apperrors.ErrValidation, in.DonationType)
	case !in.Urgency.Valid():
		return fmt.Errorf("%w: unknown urgency '%s'", apperrors.ErrValidation, in.Urgency)
	case source == domain.SourceRecipient && in.UnitsNeeded == nil:
		return fmt.Errorf("%w: units needed is required for recipient requests", apperrors.ErrValidation)
	case in.UnitsNeeded != nil && *in.UnitsNeeded < 1:
		return fmt.Errorf("%w: units needed must be at least 1", apperrors.ErrValidation)
	case in.PatientAge != nil && (*in.PatientAge < 0 || *in.PatientAge > 150):
		return fmt.Errorf("%w: patient age is out of range", apperrors.ErrValidation)
	}

	return nil
}

func (s *RequestServiceImpl) GetRequest(ctx context.Context, actor domain.Actor, requestID string) (*RequestView, error) {
	const op = "internal.service.request.GetRequest"

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	request, err := s.requests.GetRequestByID(ctx, s.db, requestID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get request: %w", op, err)
	}

	full, err := s.canSeeFullRequest(ctx, actor, request)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !full {
		if actor.Role != domain.RoleDonor {
			return nil, fmt.Errorf("%w: request belongs to another user", apperrors.ErrForbidden)
		}

		var match *domain.MatchEntry

		entry, err := s.matches.GetMatch(ctx, s.db, requestID, actor.ID)
		switch {
		case err == nil:
			match = entry
		case !isNotFound(err):
			return nil, fmt.Errorf("%s: failed to get match: %w", op, err)
		}

		view := domain.Sanitize(request, match)

		return &RequestView{DonorView: &view}, nil
	}

	if request.Matches, err = s.matches.ListMatches(ctx, s.db, requestID); err != nil {
		return nil, fmt.Errorf("%s: failed to list matches: %w", op, err)
	}

	if request.AssignedUnitIDs, err = s.inventory.ListUnitIDsByRequest(ctx, s.db, requestID); err != nil {
		return nil, fmt.Errorf("%s: failed to list assigned units: %w", op, err)
	}

	return &RequestView{Request: request}, nil
}

func (s *RequestServiceImpl) canSeeFullRequest(ctx context.Context, actor domain.Actor, request *domain.BloodRequest) (bool, error) {
	switch {
	case actor.IsAdmin(), actor.ID == request.RequestorID:
		return true, nil
	case actor.Role != domain.RoleHospitalAdmin:
		return false, nil
	}

	hospital, err := s.hospitals.GetHospitalByID(ctx, s.db, request.HospitalID)
	if err != nil {
		return false, fmt.Errorf("failed to get hospital: %w", err)
	}

	if err := requireHospitalStaff(actor, hospital, false); err != nil {
		return false, err
	}

	return true, nil
}

func (s *RequestServiceImpl) ListRequests(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.BloodRequest, error) {
	const op = "internal.service.request.ListRequests"

	if err := requireRole(actor, domain.RoleHospitalAdmin, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleHospitalAdmin {
		if filter.HospitalID == "" {
			return nil, fmt.Errorf("%w: hospital_id is required", apperrors.ErrValidation)
		}

		hospital, err := s.hospitals.GetHospitalByID(ctx, s.db, filter.HospitalID)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to get hospital: %w", op, err)
		}

		if err := requireHospitalStaff(actor, hospital, false); err != nil {
			return nil, err
		}
	}

	if filter.Limit == 0 || filter.Limit > 200 {
		filter.Limit = 50
	}

	requests, err := s.requests.ListRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list requests: %w", op, err)
	}

	return requests, nil
}

// Cancel is allowed to the requestor only. Units still reserved for the request go back to available.
func (s *RequestServiceImpl) Cancel(ctx context.Context, actor domain.Actor, requestID string) (*RequestResult, error) {
	const op = "internal.service.request.Cancel"

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	return s.close(ctx, op, requestID, domain.RequestCancelled, nil, func(_ *sqlx.Tx, request *domain.BloodRequest) error {
		if request.RequestorID != actor.ID {
			return fmt.Errorf("%w: only the requestor can cancel a request", apperrors.ErrForbidden)
		}

		return nil
	})
}

// MarkUnavailable closes a request the hospital cannot serve.
func (s *RequestServiceImpl) MarkUnavailable(ctx context.Context, actor domain.Actor, requestID, reason string) (*RequestResult, error) {
	const op = "internal.service.request.MarkUnavailable"

	if err := requireRole(actor, domain.RoleHospitalAdmin, domain.RoleAdmin); err != nil {
		return nil, err
	}

	extra := map[string]any{}
	if r := strings.TrimSpace(reason); r != "" {
		extra["reason"] = r
	}

	return s.close(ctx, op, requestID, domain.RequestUnavailable, extra, func(tx *sqlx.Tx, request *domain.BloodRequest) error {
		hospital, err := s.hospitals.GetHospitalByID(ctx, tx, request.HospitalID)
		if err != nil {
			return fmt.Errorf("failed to get hospital: %w", err)
		}

		return requireHospitalStaff(actor, hospital, true)
	})
}

// close moves a request to a terminal non-fulfilled status and releases its reservation.
func (s *RequestServiceImpl) close(
	ctx context.Context,
	op string,
	requestID string,
	to domain.RequestStatus,
	extra map[string]any,
	authorize func(tx *sqlx.Tx, request *domain.BloodRequest) error,
) (*RequestResult, error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", requestID))

	result := &RequestResult{}
	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		request, err := s.requests.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("%s: failed to get request with lock: %w", op, err)
		}

		if err := authorize(tx, request); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		from := request.Status
		if err := from.ValidateTransition(to); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		released, err := s.inventory.ReleaseUnits(ctx, tx, request.ID)
		if err != nil {
			return fmt.Errorf("%s: failed to release units: %w", op, err)
		}

		request.Status = to
		request.UpdatedAt = now

		if err := s.requests.UpdateRequest(ctx, tx, request); err != nil {
			return fmt.Errorf("%s: failed to update request: %w", op, err)
		}

		event := domain.StatusUpdatedEvent(request, from, now)
		for k, v := range extra {
			event.Payload[k] = v
		}

		if len(released) > 0 {
			event.Payload["released_unit_ids"] = released
		}

		result.Request = request
		result.ReleasedUnitIDs = released
		result.Events = []domain.Event{event}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition(string(to))

	log.Info("request closed",
		slog.String("status", string(to)),
		slog.Int("released_units", len(result.ReleasedUnitIDs)),
	)

	return result, nil
}

// ConfirmFulfillment closes a confirmed or partially fulfilled request as fulfilled. Requests
// with a unit target must have reached it; unit-less donor requests only need the confirmation.
func (s *RequestServiceImpl) ConfirmFulfillment(ctx context.Context, actor domain.Actor, requestID string) (*RequestResult, error) {
	const op = "internal.service.request.ConfirmFulfillment"
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
		if err := from.ValidateTransition(domain.RequestFulfilled); err != nil {
			return err
		}

		if request.UnitsNeeded != nil && request.UnitsFulfilled < *request.UnitsNeeded {
			return fmt.Errorf("%s: %w: %d of %d units assigned", op, apperrors.ErrValidation,
				request.UnitsFulfilled, *request.UnitsNeeded)
		}

		consumed, err := fulfill(ctx, tx, s.inventory, s.hospitals, request, now)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.requests.UpdateRequest(ctx, tx, request); err != nil {
			return fmt.Errorf("%s: failed to update request: %w", op, err)
		}

		event := domain.StatusUpdatedEvent(request, from, now)
		event.Payload["consumed_unit_ids"] = consumed

		result.Request = request
		result.ConsumedUnitIDs = consumed
		result.Events = []domain.Event{event}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition(string(domain.RequestFulfilled))

	log.Info("request fulfilled", slog.Int("consumed_units", len(result.ConsumedUnitIDs)))

	return result, nil
}

// fulfill marks request fulfilled in memory, consumes its reserved units and bumps the
// hospital counter. The caller persists the request in the same transaction.
func fulfill(
	ctx context.Context,
	tx *sqlx.Tx,
	inventory repository.InventoryRepository,
	hospitals repository.HospitalRepository,
	request *domain.BloodRequest,
	now time.Time,
) ([]string, error) {
	consumed, err := inventory.ConsumeUnits(ctx, tx, request.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to consume units: %w", err)
	}

	if err := hospitals.IncrementRequestsFulfilled(ctx, tx, request.HospitalID); err != nil {
		return nil, fmt.Errorf("failed to increment hospital counter: %w", err)
	}

	request.Status = domain.RequestFulfilled
	request.FulfilledAt = &now
	request.UpdatedAt = now

	return consumed, nil
}

// Redirect moves a non-terminal request to another approved hospital. Its reservation is
// released, progress resets and the request starts over as pending.
func (s *RequestServiceImpl) Redirect(ctx context.Context, actor domain.Actor, requestID, targetHospitalID string) (*RequestResult, error) {
	const op = "internal.service.request.Redirect"
	log := s.log.With(slog.String("op", op), slog.String("request_id", requestID), slog.String("target", targetHospitalID))

	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	result := &RequestResult{}
	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		request, err := s.requests.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("%s: failed to get request with lock: %w", op, err)
		}

		if request.Status.IsTerminal() {
			return &apperrors.TransitionError{Entity: "request", From: string(request.Status), To: string(domain.RequestPending)}
		}

		if request.HospitalID == targetHospitalID {
			return fmt.Errorf("%w: request is already at hospital '%s'", apperrors.ErrValidation, targetHospitalID)
		}

		if _, err := approvedHospital(ctx, tx, s.hospitals, targetHospitalID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		released, err := s.inventory.ReleaseUnits(ctx, tx, request.ID)
		if err != nil {
			return fmt.Errorf("%s: failed to release units: %w", op, err)
		}

		redirect := &domain.RequestRedirect{
			ID:             uuid.NewString(),
			RequestID:      request.ID,
			FromHospitalID: request.HospitalID,
			ToHospitalID:   targetHospitalID,
			RedirectedBy:   actor.ID,
			RedirectedAt:   now,
		}

		if err := s.requests.CreateRedirect(ctx, tx, redirect); err != nil {
			return fmt.Errorf("%s: failed to store redirect: %w", op, err)
		}

		from := request.Status

		request.HospitalID = targetHospitalID
		request.Status = domain.RequestPending
		request.UnitsFulfilled = 0
		request.RedirectedBy = &actor.ID
		request.RedirectedTo = &targetHospitalID
		request.UpdatedAt = now

		if err := s.requests.UpdateRequest(ctx, tx, request); err != nil {
			return fmt.Errorf("%s: failed to update request: %w", op, err)
		}

		result.Request = request
		result.ReleasedUnitIDs = released
		result.Events = []domain.Event{domain.NewEvent(domain.EventRequestRedirected, request.ID, now, map[string]any{
			"request_id":        request.ID,
			"requestor_id":      request.RequestorID,
			"from_hospital_id":  redirect.FromHospitalID,
			"to_hospital_id":    redirect.ToHospitalID,
			"redirected_by":     actor.ID,
			"previous_status":   string(from),
			"released_unit_ids": released,
		})}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition(string(domain.RequestPending))

	log.Info("request redirected", slog.Int("released_units", len(result.ReleasedUnitIDs)))

	return result, nil
}
