package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type BroadcastRepository struct {
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.BroadcastRepository = (*BroadcastRepository)(nil)

func NewBroadcastRepository(log *slog.Logger) *BroadcastRepository {
	return &BroadcastRepository{
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *BroadcastRepository) CreateBroadcast(ctx context.Context, tx *sqlx.Tx, broadcast *domain.Broadcast) error {
	const op = "internal.repository.postgres.broadcast.CreateBroadcast"

	targets := broadcast.TargetBloodTypes
	if targets == nil {
		targets = pq.StringArray{}
	}

	query, args, err := r.sq.Insert("broadcasts").
		Columns("id", "sent_by", "title", "message", "target_blood_types", "target_city", "total_recipients", "created_at").
		Values(broadcast.ID, broadcast.SentBy, broadcast.Title, broadcast.Message, targets, broadcast.TargetCity, broadcast.TotalRecipients, broadcast.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	r.log.Debug("broadcast stored", slog.String("op", op), slog.String("broadcast_id", broadcast.ID))

	return nil
}
