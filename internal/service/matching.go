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
	"github.com/jmoiron/sqlx"
)

type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

func (d Decision) matchStatus() (domain.MatchStatus, bool) {
	switch d {
	case DecisionAccept:
		return domain.MatchAccepted, true
	case DecisionDecline:
		return domain.MatchDeclined, true
	}

	return "", false
}

type NotifyResult struct {
	Request          *domain.BloodRequest
	NotifiedDonorIDs []string
	Events           []domain.Event
}

type RespondResult struct {
	Match  *domain.MatchEntry
	Events []domain.Event
}

type MatchingService interface {
	Notify(ctx context.Context, actor domain.Actor, requestID string, donorIDs []string) (*NotifyResult, error)
	NotifyCompatibleDonors(ctx context.Context, actor domain.Actor, requestID string, limit uint64) (*NotifyResult, error)
	Respond(ctx context.Context, actor domain.Actor, requestID, donorID string, decision Decision, reason *string) (*RespondResult, error)
	AcceptedRequests(ctx context.Context, actor domain.Actor, donorID string) ([]domain.DonorRequestView, error)
}

type MatchingServiceImpl struct {
	BaseService
	policy    Policy
	requests  repository.RequestRepository
	matches   repository.MatchRepository
	donors    repository.DonorRepository
	hospitals repository.HospitalRepository
}

func NewMatchingService(
	base BaseService,
	policy Policy,
	requests repository.RequestRepository,
	matches repository.MatchRepository,
	donors repository.DonorRepository,
	hospitals repository.HospitalRepository,
) *MatchingServiceImpl {
	return &MatchingServiceImpl{
		BaseService: base,
		policy:      policy,
		requests:    requests,
		matches:     matches,
		donors:      donors,
		hospitals:   hospitals,
	}
}

// Notify matches the listed donors to a recipient request. Donors already matched are
// skipped silently; every listed donor must exist and fit the request's blood type.
func (s *MatchingServiceImpl) Notify(ctx context.Context, actor domain.Actor, requestID string, donorIDs []string) (*NotifyResult, error) {
	const op = "internal.service.matching.Notify"

	if len(donorIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one donor is required", apperrors.ErrValidation)
	}

	now := s.now()

	return s.notify(ctx, op, actor, requestID, func(tx *sqlx.Tx, request *domain.BloodRequest) ([]string, error) {
		donors, err := s.donors.GetDonorsByIDs(ctx, tx, donorIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to get donors: %w", err)
		}

		found := make(map[string]domain.Donor, len(donors))
		for _, donor := range donors {
			found[donor.ID] = donor
		}

		ids := make([]string, 0, len(donorIDs))
		seen := make(map[string]struct{}, len(donorIDs))

		for _, id := range donorIDs {
			if _, dup := seen[id]; dup {
				continue
			}

			seen[id] = struct{}{}

			donor, ok := found[id]
			if !ok {
				return nil, fmt.Errorf("donor '%s': %w", id, apperrors.ErrNotFound)
			}

			if !s.policy.DonorMode.Accepts(donor.BloodType, request.BloodType) {
				return nil, fmt.Errorf("%w: donor '%s' with blood type %s cannot serve %s",
					apperrors.ErrValidation, id, donor.BloodType, request.BloodType)
			}

			if err := notifiable(donor, now); err != nil {
				return nil, err
			}

			ids = append(ids, id)
		}

		return ids, nil
	})
}

// notifiable rejects donors the candidate search would never return: ones still in cooldown,
// ones marked unavailable and ones that opted out of notifications.
func notifiable(donor domain.Donor, now time.Time) error {
	eligibility := domain.EligibilityAt(donor.NextEligibleDate, now)
	if !eligibility.IsEligible {
		return fmt.Errorf("%w: donor '%s' is not eligible for %d more days",
			apperrors.ErrValidation, donor.ID, eligibility.DaysUntilEligible)
	}

	if !donor.IsAvailable {
		return fmt.Errorf("%w: donor '%s' is not available", apperrors.ErrValidation, donor.ID)
	}

	if !donor.NotificationsEnabled {
		return fmt.Errorf("%w: donor '%s' has notifications disabled", apperrors.ErrValidation, donor.ID)
	}

	return nil
}

// NotifyCompatibleDonors searches eligible, reachable donors for the request and notifies them.
func (s *MatchingServiceImpl) NotifyCompatibleDonors(ctx context.Context, actor domain.Actor, requestID string, limit uint64) (*NotifyResult, error) {
	const op = "internal.service.matching.NotifyCompatibleDonors"

	if limit == 0 || limit > s.policy.NotifyLimit {
		limit = s.policy.NotifyLimit
	}

	now := s.now()

	return s.notify(ctx, op, actor, requestID, func(tx *sqlx.Tx, request *domain.BloodRequest) ([]string, error) {
		candidates, err := s.donors.FindCandidates(ctx, tx, repository.DonorCandidateFilter{
			BloodTypes:       s.policy.DonorMode.SupplyTypes(request.BloodType),
			EligibleAt:       now,
			ExcludeRequestID: request.ID,
			Limit:            limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to find candidates: %w", err)
		}

		ids := make([]string, 0, len(candidates))
		for _, donor := range candidates {
			ids = append(ids, donor.ID)
		}

		return ids, nil
	})
}

func (s *MatchingServiceImpl) notify(
	ctx context.Context,
	op string,
	actor domain.Actor,
	requestID string,
	pick func(tx *sqlx.Tx, request *domain.BloodRequest) ([]string, error),
) (*NotifyResult, error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", requestID))

	if err := requireRole(actor, domain.RoleHospitalAdmin, domain.RoleAdmin); err != nil {
		return nil, err
	}

	result := &NotifyResult{NotifiedDonorIDs: []string{}}
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

		if err := requireHospitalStaff(actor, hospital, true); err != nil {
			return err
		}

		if request.Source != domain.SourceRecipient {
			return fmt.Errorf("%w: only recipient requests notify donors", apperrors.ErrValidation)
		}

		if request.Status.IsTerminal() {
			return &apperrors.TransitionError{Entity: "request", From: string(request.Status), To: string(domain.RequestNotifiedDonors)}
		}

		donorIDs, err := pick(tx, request)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		result.Request = request

		if len(donorIDs) == 0 {
			return nil
		}

		inserted, err := s.matches.InsertMatches(ctx, tx, request.ID, donorIDs, now)
		if err != nil {
			return fmt.Errorf("%s: failed to insert matches: %w", op, err)
		}

		if len(inserted) == 0 {
			return nil
		}

		result.NotifiedDonorIDs = inserted

		for _, donorID := range inserted {
			result.Events = append(result.Events, domain.NewEvent(domain.EventDonorNotified, request.ID, now, map[string]any{
				"request_id":    request.ID,
				"donor_id":      donorID,
				"hospital_id":   request.HospitalID,
				"blood_type":    string(request.BloodType),
				"donation_type": string(request.DonationType),
				"urgency":       string(request.Urgency),
			}))
		}

		if request.Status == domain.RequestPending {
			from := request.Status
			request.Status = domain.RequestNotifiedDonors
			request.UpdatedAt = now

			if err := s.requests.UpdateRequest(ctx, tx, request); err != nil {
				return fmt.Errorf("%s: failed to update request: %w", op, err)
			}

			result.Events = append(result.Events, domain.StatusUpdatedEvent(request, from, now))
		}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	if result.Request.Status == domain.RequestNotifiedDonors && len(result.NotifiedDonorIDs) > 0 {
		metrics.ObserveTransition(string(domain.RequestNotifiedDonors))
	}

	log.Info("donors notified", slog.Int("notified", len(result.NotifiedDonorIDs)))

	return result, nil
}

// Respond records a donor's single answer to a notification.
func (s *MatchingServiceImpl) Respond(
	ctx context.Context, actor domain.Actor, requestID, donorID string, decision Decision, reason *string,
) (*RespondResult, error) {
	const op = "internal.service.matching.Respond"
	log := s.log.With(slog.String("op", op), slog.String("request_id", requestID), slog.String("donor_id", donorID))

	if err := requireRole(actor, domain.RoleDonor); err != nil {
		return nil, err
	}

	if actor.ID != donorID {
		return nil, fmt.Errorf("%w: donors respond only for themselves", apperrors.ErrForbidden)
	}

	status, ok := decision.matchStatus()
	if !ok {
		return nil, fmt.Errorf("%w: unknown decision '%s'", apperrors.ErrValidation, decision)
	}

	if status == domain.MatchAccepted || (reason != nil && strings.TrimSpace(*reason) == "") {
		reason = nil
	}

	result := &RespondResult{}
	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		request, err := s.requests.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("%s: failed to get request: %w", op, err)
		}

		match, err := s.matches.GetMatch(ctx, tx, requestID, donorID)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%s: %w", op, apperrors.ErrNotMatched)
			}

			return fmt.Errorf("%s: failed to get match: %w", op, err)
		}

		if request.Status.IsTerminal() {
			return &apperrors.TransitionError{Entity: "request", From: string(request.Status), To: string(request.Status)}
		}

		if !match.Status.CanTransitionTo(status) || match.Status != domain.MatchNotified {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyResponded)
		}

		changed, err := s.matches.RespondMatch(ctx, tx, requestID, donorID, status, reason, now)
		if err != nil {
			return fmt.Errorf("%s: failed to store response: %w", op, err)
		}

		if !changed {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyResponded)
		}

		match.Status = status
		match.RespondedAt = &now
		match.DeclineReason = reason

		result.Match = match
		result.Events = []domain.Event{domain.NewEvent(domain.EventDonorResponded, request.ID, now, map[string]any{
			"request_id":   request.ID,
			"donor_id":     donorID,
			"hospital_id":  request.HospitalID,
			"requestor_id": request.RequestorID,
			"decision":     string(decision),
		})}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("donor responded", slog.String("decision", string(decision)))

	return result, nil
}

// AcceptedRequests lists the requests a donor accepted, projected for the donor.
func (s *MatchingServiceImpl) AcceptedRequests(ctx context.Context, actor domain.Actor, donorID string) ([]domain.DonorRequestView, error) {
	const op = "internal.service.matching.AcceptedRequests"

	if err := requireSelfOrAdmin(actor, donorID); err != nil {
		return nil, err
	}

	matches, err := s.matches.ListMatchesByDonor(ctx, donorID, []domain.MatchStatus{domain.MatchAccepted})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list matches: %w", op, err)
	}

	if len(matches) == 0 {
		return []domain.DonorRequestView{}, nil
	}

	byRequest := make(map[string]*domain.MatchEntry, len(matches))
	ids := make([]string, 0, len(matches))

	for i := range matches {
		byRequest[matches[i].RequestID] = &matches[i]
		ids = append(ids, matches[i].RequestID)
	}

	requests, err := s.requests.GetRequestsByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get requests: %w", op, err)
	}

	views := make([]domain.DonorRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, domain.Sanitize(&requests[i], byRequest[requests[i].ID]))
	}

	return views, nil
}
