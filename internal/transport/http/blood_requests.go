package http

import (
	"fmt"
	"net/http"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/service"
	"github.com/YusovID/bloodbank-service/pkg/api"
)

type requestResponse struct {
	Request         *domain.BloodRequest `json:"request"`
	ReleasedUnitIDs []string             `json:"released_unit_ids,omitempty"`
	ConsumedUnitIDs []string             `json:"consumed_unit_ids,omitempty"`
}

func newRequestResponse(result *service.RequestResult) requestResponse {
	return requestResponse{
		Request:         result.Request,
		ReleasedUnitIDs: result.ReleasedUnitIDs,
		ConsumedUnitIDs: result.ConsumedUnitIDs,
	}
}

func (s *Server) CreateBloodRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateBloodRequest"

	var req api.CreateBloodRequestJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	donationType := domain.DonationType(value(req.DonationType))
	if donationType == "" {
		donationType = domain.DonationWholeBlood
	}

	result, err := s.svc.Requests.CreateRequest(r.Context(), getActor(r.Context()), service.CreateRequestInput{
		HospitalID:       req.HospitalId,
		BloodType:        domain.BloodType(req.BloodType),
		DonationType:     donationType,
		UnitsNeeded:      req.UnitsNeeded,
		Urgency:          domain.Urgency(req.Urgency),
		RequiredBy:       req.RequiredBy,
		PatientName:      req.PatientName,
		PatientAge:       req.PatientAge,
		MedicalCondition: req.MedicalCondition,
		Notes:            req.Notes,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, newRequestResponse(result))
}

func (s *Server) GetBloodRequest(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.GetBloodRequest"

	view, err := s.svc.Requests.GetRequest(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if view.DonorView != nil {
		s.respond(w, http.StatusOK, map[string]*domain.DonorRequestView{"request": view.DonorView})
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.BloodRequest{"request": view.Request})
}

func (s *Server) ListBloodRequests(w http.ResponseWriter, r *http.Request, params api.ListBloodRequestsParams) {
	const op = "internal.transport.http.ListBloodRequests"

	filter, err := requestFilter(params)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	requests, err := s.svc.Requests.ListRequests(r.Context(), getActor(r.Context()), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if requests == nil {
		requests = []domain.BloodRequest{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.BloodRequest{"requests": requests})
}

func requestFilter(params api.ListBloodRequestsParams) (domain.RequestFilter, error) {
	filter := domain.RequestFilter{
		HospitalID: value(params.HospitalId),
		Status:     domain.RequestStatus(value(params.Status)),
		BloodType:  domain.BloodType(value(params.BloodType)),
		Urgency:    domain.Urgency(value(params.Urgency)),
	}

	switch {
	case filter.Status != "" && !filter.Status.Valid():
		return filter, fmt.Errorf("%w: unknown status '%s'", apperrors.ErrInvalidRequest, filter.Status)
	case filter.BloodType != "" && !filter.BloodType.Valid():
		return filter, fmt.Errorf("%w: unknown blood type '%s'", apperrors.ErrInvalidRequest, filter.BloodType)
	case filter.Urgency != "" && !filter.Urgency.Valid():
		return filter, fmt.Errorf("%w: unknown urgency '%s'", apperrors.ErrInvalidRequest, filter.Urgency)
	}

	var err error

	if filter.Limit, err = queryUint("limit", params.Limit); err != nil {
		return filter, err
	}

	if filter.Offset, err = queryUint("offset", params.Offset); err != nil {
		return filter, err
	}

	return filter, nil
}

type notifyResponse struct {
	Request          *domain.BloodRequest `json:"request"`
	NotifiedDonorIDs []string             `json:"notified_donor_ids"`
}

func (s *Server) NotifyDonors(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.NotifyDonors"

	var req api.NotifyDonorsJSONRequestBody
	if err := s.decodeOptional(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var (
		result *service.NotifyResult
		err    error
	)

	actor := getActor(r.Context())

	if donorIDs := value(req.DonorIds); len(donorIDs) > 0 {
		result, err = s.svc.Matching.Notify(r.Context(), actor, id, donorIDs)
	} else {
		result, err = s.svc.Matching.NotifyCompatibleDonors(r.Context(), actor, id, uint64(value(req.Limit)))
	}

	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, notifyResponse{Request: result.Request, NotifiedDonorIDs: result.NotifiedDonorIDs})
}

func (s *Server) RespondToRequest(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.RespondToRequest"

	var req api.RespondToRequestJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	actor := getActor(r.Context())

	result, err := s.svc.Matching.Respond(r.Context(), actor, id, actor.ID, service.Decision(req.Decision), req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.MatchEntry{"match": result.Match})
}

func (s *Server) AssignInventory(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.AssignInventory"

	var req api.AssignInventoryJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Allocation.AssignInventory(r.Context(), getActor(r.Context()), id, req.UnitIds)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newRequestResponse(result))
}

func (s *Server) ConfirmFulfillment(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.ConfirmFulfillment"

	result, err := s.svc.Requests.ConfirmFulfillment(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newRequestResponse(result))
}

func (s *Server) MarkRequestUnavailable(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.MarkRequestUnavailable"

	var req api.MarkRequestUnavailableJSONRequestBody
	if err := s.decodeOptional(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Requests.MarkUnavailable(r.Context(), getActor(r.Context()), id, value(req.Reason))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newRequestResponse(result))
}

func (s *Server) CancelBloodRequest(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.CancelBloodRequest"

	result, err := s.svc.Requests.Cancel(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newRequestResponse(result))
}

func (s *Server) RedirectBloodRequest(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.RedirectBloodRequest"

	var req api.RedirectBloodRequestJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Requests.Redirect(r.Context(), getActor(r.Context()), id, req.TargetHospitalId)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newRequestResponse(result))
}
