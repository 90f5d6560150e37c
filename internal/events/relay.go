package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/metrics"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

const (
	defaultRelayBatchSize   = 100
	defaultRelayMaxAttempts = 10
)

type TxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Projector derives read-model rows from published events inside the relay transaction.
type Projector interface {
	Project(ctx context.Context, tx *sqlx.Tx, events []domain.Event) error
}

type RelayConfig struct {
	BatchSize   uint64
	MaxAttempts int
}

// Relay moves committed outbox rows to a Publisher. Rows are locked with SKIP LOCKED
// while publishing, so several relays never deliver the same batch concurrently.
//
// When a batch fails the relay retries its events one by one. Events that still fail
// while others get through have their attempts counted and are dead-lettered after
// MaxAttempts, so a single undeliverable event cannot hold back the rest of the outbox.
type Relay struct {
	db          TxBeginner
	outbox      repository.OutboxRepository
	publisher   Publisher
	projector   Projector
	batchSize   uint64
	maxAttempts int
	log         *slog.Logger
	now         func() time.Time
}

// NewRelay builds a relay. projector may be nil.
func NewRelay(
	db TxBeginner,
	outbox repository.OutboxRepository,
	publisher Publisher,
	projector Projector,
	cfg RelayConfig,
	log *slog.Logger,
) *Relay {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = defaultRelayBatchSize
	}

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultRelayMaxAttempts
	}

	return &Relay{
		db:          db,
		outbox:      outbox,
		publisher:   publisher,
		projector:   projector,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type deliveryFailure struct {
	event domain.Event
	err   error
}

// RunOnce publishes one batch and returns how many events were delivered.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	const op = "internal.events.relay.RunOnce"
	log := r.log.With(slog.String("op", op), slog.String("sink", r.publisher.Name()))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	batch, err := r.outbox.FetchUnpublished(ctx, tx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to fetch events: %w", op, err)
	}

	if len(batch) == 0 {
		return 0, nil
	}

	published, failures := r.deliver(ctx, batch)

	if len(published) == 0 && !anyPermanent(failures) {
		metrics.OutboxEventsTotal.WithLabelValues(r.publisher.Name(), "failed").Add(float64(len(batch)))
		return 0, fmt.Errorf("%s: %w", op, failures[0].err)
	}

	now := r.now()

	for _, f := range failures {
		if err := r.recordFailure(ctx, tx, f, now); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if r.projector != nil && len(published) > 0 {
		if err := r.projector.Project(ctx, tx, published); err != nil {
			return 0, fmt.Errorf("%s: failed to project events: %w", op, err)
		}
	}

	ids := make([]string, 0, len(published))
	for _, e := range published {
		ids = append(ids, e.ID)
	}

	if err := r.outbox.MarkPublished(ctx, tx, ids, now); err != nil {
		return 0, fmt.Errorf("%s: failed to mark events published: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	metrics.OutboxEventsTotal.WithLabelValues(r.publisher.Name(), "published").Add(float64(len(published)))

	log.Debug("outbox batch published", slog.Int("events", len(published)), slog.Int("failed", len(failures)))

	return len(published), nil
}

// deliver publishes batch in one call and falls back to one call per event when that fails.
func (r *Relay) deliver(ctx context.Context, batch []domain.Event) ([]domain.Event, []deliveryFailure) {
	err := r.publisher.Publish(ctx, batch)
	if err == nil {
		return batch, nil
	}

	if len(batch) == 1 {
		return nil, []deliveryFailure{{event: batch[0], err: err}}
	}

	var (
		published []domain.Event
		failures  []deliveryFailure
	)

	for _, e := range batch {
		if err := r.publisher.Publish(ctx, []domain.Event{e}); err != nil {
			failures = append(failures, deliveryFailure{event: e, err: err})
			continue
		}

		published = append(published, e)
	}

	return published, failures
}

func (r *Relay) recordFailure(ctx context.Context, tx *sqlx.Tx, f deliveryFailure, now time.Time) error {
	maxAttempts := r.maxAttempts
	if errors.Is(f.err, ErrPermanent) {
		maxAttempts = 1
	}

	dead, err := r.outbox.RecordFailure(ctx, tx, f.event.ID, f.err.Error(), maxAttempts, now)
	if err != nil {
		return fmt.Errorf("failed to record delivery failure of '%s': %w", f.event.ID, err)
	}

	log := r.log.With(
		slog.String("event_id", f.event.ID),
		slog.String("type", string(f.event.Type)),
		sl.Err(f.err),
	)

	if dead {
		metrics.OutboxEventsTotal.WithLabelValues(r.publisher.Name(), "dead_lettered").Inc()
		log.Error("outbox event dead-lettered")

		return nil
	}

	metrics.OutboxEventsTotal.WithLabelValues(r.publisher.Name(), "failed").Inc()
	log.Warn("outbox event delivery failed, will retry")

	return nil
}

func anyPermanent(failures []deliveryFailure) bool {
	for _, f := range failures {
		if errors.Is(f.err, ErrPermanent) {
			return true
		}
	}

	return false
}

// Drain publishes batches until the outbox is empty or ctx ends.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	total := 0

	for {
		n, err := r.RunOnce(ctx)
		total += n

		if err != nil || n == 0 {
			return total, err
		}

		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
}
