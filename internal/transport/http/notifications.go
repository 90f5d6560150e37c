package http

import (
	"net/http"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/pkg/api"
)

func (s *Server) GetNotifications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetNotifications"

	inbox, err := s.svc.Notifications.GetNotifications(r.Context(), getActor(r.Context()))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if inbox.Notifications == nil {
		inbox.Notifications = []domain.Notification{}
	}

	s.respond(w, http.StatusOK, inbox)
}

func (s *Server) MarkNotificationRead(w http.ResponseWriter, r *http.Request, id api.ID) {
	const op = "internal.transport.http.MarkNotificationRead"

	if err := s.svc.Notifications.MarkNotificationRead(r.Context(), getActor(r.Context()), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
