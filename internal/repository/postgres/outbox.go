package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

type outboxRow struct {
	ID          string    `db:"id"`
	EventType   string    `db:"event_type"`
	AggregateID string    `db:"aggregate_id"`
	Payload     []byte    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
}

type OutboxRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.OutboxRepository = (*OutboxRepository)(nil)

func NewOutboxRepository(log *slog.Logger) *OutboxRepository {
	return &OutboxRepository{
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *OutboxRepository) Append(ctx context.Context, tx *sqlx.Tx, events ...domain.Event) error {
	const op = "internal.repository.postgres.outbox.Append"

	if len(events) == 0 {
		return nil
	}

	insertBuilder := r.sq.Insert("outbox").
		Columns("id", "event_type", "aggregate_id", "payload", "created_at")

	for _, event := range events {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal payload of '%s': %w", op, event.Type, err)
		}

		insertBuilder = insertBuilder.Values(event.ID, event.Type, event.AggregateID, string(payload), event.OccurredAt)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *OutboxRepository) FetchUnpublished(ctx context.Context, tx *sqlx.Tx, limit uint64) ([]domain.Event, error) {
	const op = "internal.repository.postgres.outbox.FetchUnpublished"

	query, args, err := r.sq.Select("id", "event_type", "aggregate_id", "payload", "created_at").
		From("outbox").
		Where(sq.Eq{"published_at": nil}).
		Where(sq.Eq{"failed_at": nil}).
		OrderBy("created_at", "id").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []outboxRow
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select events: %w", op, err)
	}

	events := make([]domain.Event, 0, len(rows))

	for _, row := range rows {
		var payload map[string]any
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			r.log.Error("outbox event payload is unreadable, publishing without it",
				slog.String("op", op),
				slog.String("event_id", row.ID),
			)

			payload = map[string]any{}
		}

		events = append(events, domain.Event{
			ID:          row.ID,
			Type:        domain.EventType(row.EventType),
			AggregateID: row.AggregateID,
			OccurredAt:  row.CreatedAt,
			Payload:     payload,
		})
	}

	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, tx *sqlx.Tx, eventIDs []string, now time.Time) error {
	const op = "internal.repository.postgres.outbox.MarkPublished"

	if len(eventIDs) == 0 {
		return nil
	}

	query, args, err := r.sq.Update("outbox").
		Set("published_at", now).
		Where(sq.Eq{"id": eventIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}

func (r *OutboxRepository) RecordFailure(
	ctx context.Context,
	tx *sqlx.Tx,
	eventID, lastError string,
	maxAttempts int,
	now time.Time,
) (bool, error) {
	const op = "internal.repository.postgres.outbox.RecordFailure"

	query, args, err := r.sq.Update("outbox").
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", lastError).
		Set("failed_at", sq.Expr("CASE WHEN attempts + 1 >= ? THEN ?::timestamptz END", maxAttempts, now)).
		Where(sq.Eq{"id": eventID}).
		Suffix("RETURNING failed_at IS NOT NULL").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var deadLettered bool
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&deadLettered); err != nil {
		return false, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return deadLettered, nil
}
