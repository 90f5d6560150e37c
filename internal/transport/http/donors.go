package http

import (
	"net/http"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/service"
	"github.com/YusovID/bloodbank-service/pkg/api"
)

func (s *Server) RegisterDonor(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.RegisterDonor"

	var req api.RegisterDonorJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	donor, err := s.svc.Eligibility.RegisterDonor(r.Context(), getActor(r.Context()), service.RegisterDonorInput{
		BloodType:             domain.BloodType(req.BloodType),
		PreferredDonationType: domain.DonationType(value(req.PreferredDonationType)),
		City:                  req.City,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Donor{"donor": donor})
}

func (s *Server) GetDonor(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.GetDonor"

	donor, err := s.svc.Eligibility.GetDonor(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Donor{"donor": donor})
}

func (s *Server) CheckEligibility(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.CheckEligibility"

	eligibility, err := s.svc.Eligibility.CheckEligibility(r.Context(), getActor(r.Context()), id, s.now())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Eligibility{"eligibility": eligibility})
}

type donationResponse struct {
	Donation         *domain.Donation `json:"donation"`
	NextEligibleDate time.Time        `json:"next_eligible_date"`
	PointsAwarded    int              `json:"points_awarded"`
	NewBadges        []string         `json:"new_badges"`
}

func (s *Server) RecordDonation(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.RecordDonation"

	var req api.RecordDonationJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Eligibility.RecordDonation(r.Context(), getActor(r.Context()), service.RecordDonationInput{
		DonorID:      id,
		HospitalID:   req.HospitalId,
		RequestID:    req.RequestId,
		DonationType: domain.DonationType(req.DonationType),
		QuantityML:   value(req.QuantityMl),
		DonationDate: req.DonationDate,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, donationResponse{
		Donation:         result.Donation,
		NextEligibleDate: result.NextEligibleDate,
		PointsAwarded:    result.PointsAwarded,
		NewBadges:        result.NewBadges,
	})
}

func (s *Server) ListDonations(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.ListDonations"

	donations, err := s.svc.Eligibility.ListDonations(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if donations == nil {
		donations = []domain.Donation{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.Donation{"donations": donations})
}

func (s *Server) ListAcceptedRequests(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.ListAcceptedRequests"

	views, err := s.svc.Matching.AcceptedRequests(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.DonorRequestView{"requests": views})
}
