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
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const defaultQuantityML = 450

type RegisterDonorInput struct {
	BloodType             domain.BloodType
	PreferredDonationType domain.DonationType
	City                  *string
}

type RecordDonationInput struct {
	DonorID      string
	HospitalID   string
	RequestID    *string
	DonationType domain.DonationType
	QuantityML   int
	DonationDate *time.Time
}

type DonationResult struct {
	Donation         *domain.Donation
	NextEligibleDate time.Time
	PointsAwarded    int
	NewBadges        []string
	Events           []domain.Event
}

type SweepResult struct {
	Restored []string
	Failed   int
}

type EligibilityService interface {
	RegisterDonor(ctx context.Context, actor domain.Actor, in RegisterDonorInput) (*domain.Donor, error)
	GetDonor(ctx context.Context, actor domain.Actor, donorID string) (*domain.Donor, error)
	RecordDonation(ctx context.Context, actor domain.Actor, in RecordDonationInput) (*DonationResult, error)
	ListDonations(ctx context.Context, actor domain.Actor, donorID string) ([]domain.Donation, error)
	CheckEligibility(ctx context.Context, actor domain.Actor, donorID string, now time.Time) (*domain.Eligibility, error)
	RestorationSweep(ctx context.Context, now time.Time) (*SweepResult, error)
}

type EligibilityServiceImpl struct {
	BaseService
	donors    repository.DonorRepository
	donations repository.DonationRepository
	matches   repository.MatchRepository
	hospitals repository.HospitalRepository
	batchSize uint64
}

func NewEligibilityService(
	base BaseService,
	donors repository.DonorRepository,
	donations repository.DonationRepository,
	matches repository.MatchRepository,
	hospitals repository.HospitalRepository,
) *EligibilityServiceImpl {
	return &EligibilityServiceImpl{
		BaseService: base,
		donors:      donors,
		donations:   donations,
		matches:     matches,
		hospitals:   hospitals,
		batchSize:   500,
	}
}

func (s *EligibilityServiceImpl) RegisterDonor(ctx context.Context, actor domain.Actor, in RegisterDonorInput) (*domain.Donor, error) {
	const op = "internal.service.eligibility.RegisterDonor"
	log := s.log.With(slog.String("op", op), slog.String("donor_id", actor.ID))

	if err := requireRole(actor, domain.RoleDonor); err != nil {
		return nil, err
	}

	if !in.BloodType.Valid() {
		return nil, fmt.Errorf("%w: unknown blood type '%s'", apperrors.ErrValidation, in.BloodType)
	}

	preferred := in.PreferredDonationType
	if preferred == "" {
		preferred = domain.DonationWholeBlood
	}

	if !preferred.Valid() {
		return nil, fmt.Errorf("%w: unknown donation type '%s'", apperrors.ErrValidation, preferred)
	}

	now := s.now()
	donor := &domain.Donor{
		ID:                    actor.ID,
		BloodType:             in.BloodType,
		IsEligible:            true,
		PreferredDonationType: preferred,
		Badges:                pq.StringArray{},
		IsAvailable:           true,
		NotificationsEnabled:  true,
		City:                  normalizeCity(in.City),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.donors.CreateDonor(ctx, tx, donor)
	})
	if err != nil {
		return nil, err
	}

	log.Info("donor registered", slog.String("blood_type", string(donor.BloodType)))

	return donor, nil
}

func (s *EligibilityServiceImpl) GetDonor(ctx context.Context, actor domain.Actor, donorID string) (*domain.Donor, error) {
	const op = "internal.service.eligibility.GetDonor"

	if err := requireSelfOrAdmin(actor, donorID); err != nil {
		return nil, err
	}

	donor, err := s.donors.GetDonorByID(ctx, s.db, donorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get donor: %w", op, err)
	}

	return donor, nil
}

func (s *EligibilityServiceImpl) RecordDonation(ctx context.Context, actor domain.Actor, in RecordDonationInput) (*DonationResult, error) {
	const op = "internal.service.eligibility.RecordDonation"
	log := s.log.With(slog.String("op", op), slog.String("donor_id", in.DonorID), slog.String("hospital_id", in.HospitalID))

	if err := requireSelfOrAdmin(actor, in.DonorID); err != nil {
		return nil, err
	}

	if !in.DonationType.Valid() {
		return nil, fmt.Errorf("%w: unknown donation type '%s'", apperrors.ErrValidation, in.DonationType)
	}

	now := s.now()

	donationDate := now
	if in.DonationDate != nil {
		donationDate = in.DonationDate.UTC()
	}

	if donationDate.After(now) {
		return nil, fmt.Errorf("%w: donation date is in the future", apperrors.ErrValidation)
	}

	quantity := in.QuantityML
	if quantity == 0 {
		quantity = defaultQuantityML
	}

	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	points := in.DonationType.Points()
	nextEligible := domain.NextEligibleDate(in.DonationType, donationDate)

	result := &DonationResult{
		NextEligibleDate: nextEligible,
		PointsAwarded:    points,
		NewBadges:        []string{},
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		donor, err := s.donors.GetDonorByIDWithLock(ctx, tx, in.DonorID)
		if err != nil {
			return fmt.Errorf("%s: failed to get donor with lock: %w", op, err)
		}

		if _, err := approvedHospital(ctx, tx, s.hospitals, in.HospitalID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if in.RequestID != nil {
			if err := s.checkDonationForRequest(ctx, tx, in.DonorID, *in.RequestID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		donation := &domain.Donation{
			ID:            uuid.NewString(),
			DonorID:       donor.ID,
			HospitalID:    in.HospitalID,
			RequestID:     in.RequestID,
			BloodType:     donor.BloodType,
			DonationType:  in.DonationType,
			QuantityML:    quantity,
			DonationDate:  donationDate,
			PointsAwarded: points,
			CreatedAt:     now,
		}

		if err := s.donations.CreateDonation(ctx, tx, donation); err != nil {
			return err
		}

		total, err := s.donors.ApplyDonation(ctx, tx, donor.ID, repository.DonationApplied{
			DonationDate:     donationDate,
			NextEligibleDate: nextEligible,
			Points:           points,
			UpdatedAt:        now,
		})
		if err != nil {
			return fmt.Errorf("%s: failed to update donor counters: %w", op, err)
		}

		if badge, ok := domain.MilestoneBadge(total); ok {
			added, err := s.donors.AddBadge(ctx, tx, donor.ID, badge)
			if err != nil {
				return fmt.Errorf("%s: failed to award badge: %w", op, err)
			}

			if added {
				result.NewBadges = append(result.NewBadges, badge)
			}
		}

		if in.RequestID != nil {
			moved, err := s.matches.MarkDonated(ctx, tx, *in.RequestID, donor.ID)
			if err != nil {
				return fmt.Errorf("%s: failed to mark match donated: %w", op, err)
			}

			if !moved {
				return fmt.Errorf("%s: %w: match is no longer accepted", op, apperrors.ErrConflict)
			}
		}

		if err := s.hospitals.IncrementDonationsProcessed(ctx, tx, in.HospitalID); err != nil {
			return fmt.Errorf("%s: failed to increment hospital counter: %w", op, err)
		}

		payload := map[string]any{
			"donation_id":        donation.ID,
			"donor_id":           donor.ID,
			"hospital_id":        donation.HospitalID,
			"donation_type":      string(donation.DonationType),
			"points_awarded":     points,
			"total_donations":    total,
			"next_eligible_date": nextEligible,
			"new_badges":         result.NewBadges,
		}
		if in.RequestID != nil {
			payload["request_id"] = *in.RequestID
		}

		result.Donation = donation
		result.Events = []domain.Event{domain.NewEvent(domain.EventDonationLogged, donor.ID, now, payload)}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("donation logged",
		slog.String("donation_id", result.Donation.ID),
		slog.Int("points", points),
		slog.Time("next_eligible_date", nextEligible),
	)

	return result, nil
}

func (s *EligibilityServiceImpl) checkDonationForRequest(ctx context.Context, tx *sqlx.Tx, donorID, requestID string) error {
	match, err := s.matches.GetMatch(ctx, tx, requestID, donorID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrNotMatched
		}

		return fmt.Errorf("failed to get match: %w", err)
	}

	logged, err := s.donations.ExistsForRequest(ctx, tx, donorID, requestID)
	if err != nil {
		return fmt.Errorf("failed to check previous donations: %w", err)
	}

	if logged {
		return apperrors.ErrDonationLogged
	}

	if match.Status != domain.MatchAccepted {
		return fmt.Errorf("%w: donor has not accepted this request", apperrors.ErrConflict)
	}

	return nil
}

func (s *EligibilityServiceImpl) ListDonations(ctx context.Context, actor domain.Actor, donorID string) ([]domain.Donation, error) {
	const op = "internal.service.eligibility.ListDonations"

	if err := requireSelfOrAdmin(actor, donorID); err != nil {
		return nil, err
	}

	donations, err := s.donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list donations: %w", op, err)
	}

	return donations, nil
}

// CheckEligibility computes eligibility at now and corrects the cached flag when it is stale.
// A donor restored here gets the same donor.eligible event the sweep would emit.
func (s *EligibilityServiceImpl) CheckEligibility(ctx context.Context, actor domain.Actor, donorID string, now time.Time) (*domain.Eligibility, error) {
	const op = "internal.service.eligibility.CheckEligibility"
	log := s.log.With(slog.String("op", op), slog.String("donor_id", donorID))

	if err := requireSelfOrAdmin(actor, donorID); err != nil {
		return nil, err
	}

	donor, err := s.donors.GetDonorByID(ctx, s.db, donorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get donor: %w", op, err)
	}

	eligibility := domain.EligibilityAt(donor.NextEligibleDate, now)
	eligibility.LastDonationDate = donor.LastDonationDate

	if eligibility.IsEligible == donor.IsEligible {
		return &eligibility, nil
	}

	if !eligibility.IsEligible {
		if _, err := s.donors.SetEligibility(ctx, s.db, donorID, false, now); err != nil {
			return nil, fmt.Errorf("%s: failed to reconcile eligibility: %w", op, err)
		}

		return &eligibility, nil
	}

	if _, err := s.restoreDonor(ctx, donorID, now); err != nil {
		return nil, err
	}

	log.Info("donor eligibility restored on read")

	return &eligibility, nil
}

// RestorationSweep restores every donor whose cooldown ended. Candidates are read in keyset
// pages of batchSize until a short page comes back. Each donor is flipped in its own
// transaction; failures are logged and counted, never fatal to the sweep.
func (s *EligibilityServiceImpl) RestorationSweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	const op = "internal.service.eligibility.RestorationSweep"
	log := s.log.With(slog.String("op", op), slog.Time("now", now))

	result := &SweepResult{Restored: []string{}}
	candidates := 0

	var cursor *repository.RestorationCandidate

	for {
		batch, err := s.donors.ListRestorationCandidates(ctx, now, cursor, s.batchSize)
		if err != nil {
			return result, fmt.Errorf("%s: failed to list candidates: %w", op, err)
		}

		candidates += len(batch)

		for _, candidate := range batch {
			if err := ctx.Err(); err != nil {
				return result, fmt.Errorf("%s: %w", op, err)
			}

			restored, err := s.restoreDonor(ctx, candidate.ID, now)
			if err != nil {
				result.Failed++
				metrics.SweepItemsTotal.WithLabelValues("restoration", "failed").Inc()
				log.Error("failed to restore donor", slog.String("donor_id", candidate.ID), sl.Err(err))

				continue
			}

			if restored {
				result.Restored = append(result.Restored, candidate.ID)
				metrics.SweepItemsTotal.WithLabelValues("restoration", "restored").Inc()
			}
		}

		if len(batch) == 0 || uint64(len(batch)) < s.batchSize {
			break
		}

		cursor = &batch[len(batch)-1]
	}

	log.Info("restoration sweep finished",
		slog.Int("candidates", candidates),
		slog.Int("restored", len(result.Restored)),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

// restoreDonor flips one donor to eligible and records donor.eligible in the same transaction.
// It reports false when another run already restored the donor.
func (s *EligibilityServiceImpl) restoreDonor(ctx context.Context, donorID string, now time.Time) (bool, error) {
	const op = "internal.service.eligibility.restoreDonor"

	var restored bool

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		restored, err = s.donors.SetEligibility(ctx, tx, donorID, true, now)
		if err != nil {
			return fmt.Errorf("%s: failed to set eligibility: %w", op, err)
		}

		if !restored {
			return nil
		}

		return s.emit(ctx, tx, op, domain.NewEvent(domain.EventDonorEligible, donorID, now, map[string]any{
			"donor_id":    donorID,
			"restored_at": now,
		}))
	})

	return restored, err
}

func normalizeCity(city *string) *string {
	if city == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*city)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
