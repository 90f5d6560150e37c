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
	"github.com/lib/pq"
)

type SendBroadcastInput struct {
	Title      string
	Message    string
	BloodTypes []domain.BloodType
	City       *string
}

type BroadcastResult struct {
	Broadcast    *domain.Broadcast
	RecipientIDs []string
	Events       []domain.Event
}

type BroadcastService interface {
	SendBroadcast(ctx context.Context, actor domain.Actor, in SendBroadcastInput) (*BroadcastResult, error)
}

type BroadcastServiceImpl struct {
	BaseService
	broadcasts repository.BroadcastRepository
	donors     repository.DonorRepository
}

func NewBroadcastService(base BaseService, broadcasts repository.BroadcastRepository, donors repository.DonorRepository) *BroadcastServiceImpl {
	return &BroadcastServiceImpl{
		BaseService: base,
		broadcasts:  broadcasts,
		donors:      donors,
	}
}

// SendBroadcast stores an admin announcement and resolves the donors it targets.
// Empty targets mean every donor.
func (s *BroadcastServiceImpl) SendBroadcast(ctx context.Context, actor domain.Actor, in SendBroadcastInput) (*BroadcastResult, error) {
	const op = "internal.service.broadcast.SendBroadcast"
	log := s.log.With(slog.String("op", op), slog.String("sent_by", actor.ID))

	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)

	if title == "" || message == "" {
		return nil, fmt.Errorf("%w: title and message are required", apperrors.ErrValidation)
	}

	targets := make(pq.StringArray, 0, len(in.BloodTypes))
	for _, bt := range in.BloodTypes {
		if !bt.Valid() {
			return nil, fmt.Errorf("%w: unknown blood type '%s'", apperrors.ErrValidation, bt)
		}

		targets = append(targets, string(bt))
	}

	now := s.now()
	broadcast := &domain.Broadcast{
		ID:               uuid.NewString(),
		SentBy:           actor.ID,
		Title:            title,
		Message:          message,
		TargetBloodTypes: targets,
		TargetCity:       normalizeCity(in.City),
		CreatedAt:        now,
	}

	result := &BroadcastResult{Broadcast: broadcast}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		recipients, err := s.donors.ListDonorIDsForBroadcast(ctx, tx, targets, broadcast.TargetCity)
		if err != nil {
			return fmt.Errorf("%s: failed to resolve recipients: %w", op, err)
		}

		broadcast.TotalRecipients = len(recipients)

		if err := s.broadcasts.CreateBroadcast(ctx, tx, broadcast); err != nil {
			return fmt.Errorf("%s: failed to store broadcast: %w", op, err)
		}

		result.RecipientIDs = recipients
		result.Events = []domain.Event{domain.NewEvent(domain.EventBroadcastSent, broadcast.ID, now, map[string]any{
			"broadcast_id":  broadcast.ID,
			"title":         broadcast.Title,
			"message":       broadcast.Message,
			"recipient_ids": recipients,
		})}

		return s.emit(ctx, tx, op, result.Events...)
	})
	if err != nil {
		return nil, err
	}

	log.Info("broadcast sent", slog.String("broadcast_id", broadcast.ID), slog.Int("recipients", broadcast.TotalRecipients))

	return result, nil
}
