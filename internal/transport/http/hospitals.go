package http

import (
	"fmt"
	"net/http"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/service"
	"github.com/YusovID/bloodbank-service/pkg/api"
)

func (s *Server) RegisterHospital(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.RegisterHospital"

	var req api.RegisterHospitalJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	hospital, err := s.svc.Hospitals.RegisterHospital(r.Context(), getActor(r.Context()), req.Name, req.City)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Hospital{"hospital": hospital})
}

func (s *Server) GetHospital(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.GetHospital"

	hospital, err := s.svc.Hospitals.GetHospital(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Hospital{"hospital": hospital})
}

func (s *Server) ApproveHospital(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.ApproveHospital"

	result, err := s.svc.Hospitals.ApproveHospital(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Hospital{"hospital": result.Hospital})
}

func (s *Server) RejectHospital(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.RejectHospital"

	var req api.RejectHospitalJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Hospitals.RejectHospital(r.Context(), getActor(r.Context()), id, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Hospital{"hospital": result.Hospital})
}

func (s *Server) SuspendHospital(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.SuspendHospital"

	var req api.SuspendHospitalJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Hospitals.SuspendHospital(r.Context(), getActor(r.Context()), id, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Hospital{"hospital": result.Hospital})
}

func (s *Server) AddInventoryUnits(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.AddInventoryUnits"

	var req api.AddInventoryUnitsJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	unit, err := s.svc.Inventory.AddUnits(r.Context(), getActor(r.Context()), service.AddUnitsInput{
		HospitalID:     id,
		BloodType:      domain.BloodType(req.BloodType),
		DonationType:   domain.DonationType(req.DonationType),
		UnitsCount:     req.UnitsCount,
		CollectionDate: req.CollectionDate,
		ExpiryDate:     req.ExpiryDate,
		BatchNumber:    req.BatchNumber,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.InventoryUnit{"unit": unit})
}

type inventoryResponse struct {
	Units   []domain.InventoryUnit    `json:"units"`
	Summary []domain.InventorySummary `json:"summary"`
}

func (s *Server) ListInventory(w http.ResponseWriter, r *http.Request, id api.ID, params api.ListInventoryParams) {
	const op = "internal.transport.http.ListInventory"

	filter := domain.InventoryFilter{
		Status:    domain.InventoryStatus(value(params.Status)),
		BloodType: domain.BloodType(value(params.BloodType)),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		s.handleServiceError(w, r, op, fmt.Errorf("%w: unknown status '%s'", apperrors.ErrInvalidRequest, filter.Status))
		return
	}

	if filter.BloodType != "" && !filter.BloodType.Valid() {
		s.handleServiceError(w, r, op, fmt.Errorf("%w: unknown blood type '%s'", apperrors.ErrInvalidRequest, filter.BloodType))
		return
	}

	view, err := s.svc.Inventory.ListUnits(r.Context(), getActor(r.Context()), id, filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	resp := inventoryResponse{Units: view.Units, Summary: view.Summary}
	if resp.Units == nil {
		resp.Units = []domain.InventoryUnit{}
	}

	if resp.Summary == nil {
		resp.Summary = []domain.InventorySummary{}
	}

	s.respond(w, http.StatusOK, resp)
}

func (s *Server) DiscardInventoryUnit(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.DiscardInventoryUnit"

	var req api.DiscardInventoryUnitJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	unit, err := s.svc.Inventory.Discard(r.Context(), getActor(r.Context()), id, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.InventoryUnit{"unit": unit})
}
