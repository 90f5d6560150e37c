package events

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvents() []domain.Event {
	return []domain.Event{
		{
			ID:          "e1",
			Type:        domain.EventRequestCreated,
			AggregateID: "r1",
			OccurredAt:  testNow,
			Payload:     map[string]any{"request_id": "r1", "urgency": "critical"},
		},
		{
			ID:          "e2",
			Type:        domain.EventDonorNotified,
			AggregateID: "r1",
			OccurredAt:  testNow,
			Payload:     map[string]any{"request_id": "r1", "donor_id": "d1"},
		},
	}
}

type OutboxRepositoryMock struct {
	mock.Mock
}

func (m *OutboxRepositoryMock) Append(ctx context.Context, tx *sqlx.Tx, events ...domain.Event) error {
	args := m.Called(ctx, tx, events)
	return args.Error(0)
}

func (m *OutboxRepositoryMock) FetchUnpublished(ctx context.Context, tx *sqlx.Tx, limit uint64) ([]domain.Event, error) {
	args := m.Called(ctx, tx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *OutboxRepositoryMock) MarkPublished(ctx context.Context, tx *sqlx.Tx, eventIDs []string, now time.Time) error {
	args := m.Called(ctx, tx, eventIDs, now)
	return args.Error(0)
}

func (m *OutboxRepositoryMock) RecordFailure(ctx context.Context, tx *sqlx.Tx, eventID, lastError string, maxAttempts int, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, eventID, lastError, maxAttempts, now)
	return args.Bool(0), args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) (int64, error) {
	args := m.Called(ctx, tx, notifications)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepositoryMock) ListByUser(ctx context.Context, userID string, now time.Time, limit uint64) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) CountUnread(ctx context.Context, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, notificationID, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, notificationID, userID, now)
	return args.Bool(0), args.Error(1)
}

// projectorFunc adapts a function to Projector.
type projectorFunc func(ctx context.Context, tx *sqlx.Tx, events []domain.Event) error

func (f projectorFunc) Project(ctx context.Context, tx *sqlx.Tx, events []domain.Event) error {
	return f(ctx, tx, events)
}

// selectivePublisher fails every publish call whose batch contains one of the listed
// event ids, the way a broker rejects a whole produce request for one bad record.
type selectivePublisher struct {
	failing   map[string]error
	published []string
	calls     int
}

func (p *selectivePublisher) Name() string { return "selective" }

func (p *selectivePublisher) Publish(_ context.Context, events []domain.Event) error {
	p.calls++

	for _, e := range events {
		if err, ok := p.failing[e.ID]; ok {
			return err
		}
	}

	for _, e := range events {
		p.published = append(p.published, e.ID)
	}

	return nil
}

// recordingPublisher keeps every batch it was handed.
type recordingPublisher struct {
	batches [][]domain.Event
	err     error
}

func (p *recordingPublisher) Name() string { return "recording" }

func (p *recordingPublisher) Publish(_ context.Context, events []domain.Event) error {
	if p.err != nil {
		return p.err
	}

	p.batches = append(p.batches, events)

	return nil
}
