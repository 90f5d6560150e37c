// Package events delivers outbox events to an external sink.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
)

// ErrPermanent marks a delivery failure that retrying cannot fix. The relay dead-letters
// such events on the first failure.
var ErrPermanent = errors.New("permanent delivery failure")

// Publisher hands a batch of events to a delivery channel. A returned error means
// the batch must be retried; sinks deliver at least once.
type Publisher interface {
	Publish(ctx context.Context, events []domain.Event) error
	Name() string
}

// Envelope is the wire form of an event on every sink.
type Envelope struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload"`
}

func NewEnvelope(e domain.Event) Envelope {
	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	return Envelope{
		ID:          e.ID,
		Type:        string(e.Type),
		AggregateID: e.AggregateID,
		OccurredAt:  e.OccurredAt.UTC(),
		Payload:     payload,
	}
}

func encode(e domain.Event) ([]byte, error) {
	data, err := json.Marshal(NewEnvelope(e))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode event '%s': %w", ErrPermanent, e.ID, err)
	}

	return data, nil
}

// LogPublisher writes events to the service log. It is the default sink for local runs.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Name() string { return "log" }

func (p *LogPublisher) Publish(ctx context.Context, events []domain.Event) error {
	for _, e := range events {
		data, err := encode(e)
		if err != nil {
			return err
		}

		p.log.InfoContext(ctx, "event published",
			slog.String("event_id", e.ID),
			slog.String("type", string(e.Type)),
			slog.String("aggregate_id", e.AggregateID),
			slog.String("payload", string(data)),
		)
	}

	return nil
}
