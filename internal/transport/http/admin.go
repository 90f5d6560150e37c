package http

import (
	"net/http"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/service"
	"github.com/YusovID/bloodbank-service/pkg/api"
)

type broadcastResponse struct {
	Broadcast       *domain.Broadcast `json:"broadcast"`
	TotalRecipients int               `json:"total_recipients"`
}

func (s *Server) SendBroadcast(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.SendBroadcast"

	var req api.SendBroadcastJSONRequestBody
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	requested := value(req.BloodTypes)

	bloodTypes := make([]domain.BloodType, 0, len(requested))
	for _, bt := range requested {
		bloodTypes = append(bloodTypes, domain.BloodType(bt))
	}

	result, err := s.svc.Broadcasts.SendBroadcast(r.Context(), getActor(r.Context()), service.SendBroadcastInput{
		Title:      req.Title,
		Message:    req.Message,
		BloodTypes: bloodTypes,
		City:       req.City,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, broadcastResponse{
		Broadcast:       result.Broadcast,
		TotalRecipients: result.Broadcast.TotalRecipients,
	})
}

func (s *Server) GetShortageReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetShortageReport"

	report, err := s.svc.Reports.ShortageReport(r.Context(), getActor(r.Context()), s.now())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, report)
}
