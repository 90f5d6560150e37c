package http

import (
	"fmt"
	"net/http"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/service"
	"github.com/YusovID/bloodbank-service/pkg/api"
)

func (s *Server) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ScheduleAppointment"

	var req api.ScheduleAppointmentJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Appointments.ScheduleAppointment(r.Context(), getActor(r.Context()), service.ScheduleAppointmentInput{
		HospitalID:   req.HospitalId,
		RequestID:    req.RequestId,
		ScheduledAt:  req.ScheduledAt,
		DonationType: domain.DonationType(value(req.DonationType)),
		Notes:        req.Notes,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Appointment{"appointment": result.Appointment})
}

func (s *Server) ListAppointments(w http.ResponseWriter, r *http.Request, params api.ListAppointmentsParams) {
	const op = "internal.transport.http.ListAppointments"

	filter, err := appointmentFilter(params)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	appointments, err := s.svc.Appointments.ListAppointments(r.Context(), getActor(r.Context()), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if appointments == nil {
		appointments = []domain.Appointment{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.Appointment{"appointments": appointments})
}

func appointmentFilter(params api.ListAppointmentsParams) (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		HospitalID: value(params.HospitalId),
		Status:     domain.AppointmentStatus(value(params.Status)),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		return filter, fmt.Errorf("%w: unknown status '%s'", apperrors.ErrInvalidRequest, filter.Status)
	}

	if params.Date != nil {
		day := params.Date.Time
		filter.Day = &day
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

func (s *Server) GetAppointment(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.GetAppointment"

	appointment, err := s.svc.Appointments.GetAppointment(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Appointment{"appointment": appointment})
}

func (s *Server) ConfirmAppointment(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.ConfirmAppointment"

	result, err := s.svc.Appointments.ConfirmAppointment(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Appointment{"appointment": result.Appointment})
}

func (s *Server) RescheduleAppointment(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.RescheduleAppointment"

	var req api.RescheduleAppointmentJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Appointments.RescheduleAppointment(r.Context(), getActor(r.Context()), id, req.ScheduledAt)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Appointment{"appointment": result.Appointment})
}

func (s *Server) CancelAppointment(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.CancelAppointment"

	var req api.CancelAppointmentJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Appointments.CancelAppointment(r.Context(), getActor(r.Context()), id, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Appointment{"appointment": result.Appointment})
}

func (s *Server) CompleteAppointment(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.CompleteAppointment"

	result, err := s.svc.Appointments.CompleteAppointment(r.Context(), getActor(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Appointment{"appointment": result.Appointment})
}
