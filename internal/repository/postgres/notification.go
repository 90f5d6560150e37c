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

type notificationRow struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	EventID   string     `db:"event_id"`
	Type      string     `db:"type"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	Data      []byte     `db:"data"`
	IsRead    bool       `db:"is_read"`
	ReadAt    *time.Time `db:"read_at"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
}

type NotificationRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *sqlx.DB, log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *NotificationRepository) CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) (int64, error) {
	const op = "internal.repository.postgres.notification.CreateNotifications"

	if len(notifications) == 0 {
		return 0, nil
	}

	insertBuilder := r.sq.Insert("notifications").
		Columns("id", "user_id", "event_id", "type", "title", "message", "data", "expires_at", "created_at").
		Suffix("ON CONFLICT (event_id, user_id) DO NOTHING")

	for _, n := range notifications {
		data := n.Data
		if data == nil {
			data = map[string]any{}
		}

		encoded, err := json.Marshal(data)
		if err != nil {
			return 0, fmt.Errorf("%s: failed to marshal data of '%s': %w", op, n.ID, err)
		}

		insertBuilder = insertBuilder.Values(
			n.ID, n.UserID, n.EventID, n.Type, n.Title, n.Message, string(encoded), n.ExpiresAt, n.CreatedAt,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return rows, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, now time.Time, limit uint64) ([]domain.Notification, error) {
	const op = "internal.repository.postgres.notification.ListByUser"

	builder := r.sq.Select(
		"id", "user_id", "event_id", "type", "title", "message", "data",
		"is_read", "read_at", "expires_at", "created_at",
	).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("created_at DESC", "id")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	notifications := make([]domain.Notification, 0, len(rows))

	for _, row := range rows {
		var data map[string]any
		if err := json.Unmarshal(row.Data, &data); err != nil {
			r.log.Warn("notification data is unreadable, returning it without data",
				slog.String("op", op),
				slog.String("notification_id", row.ID),
			)
		}

		notifications = append(notifications, domain.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			EventID:   row.EventID,
			Type:      domain.NotificationType(row.Type),
			Title:     row.Title,
			Message:   row.Message,
			Data:      data,
			IsRead:    row.IsRead,
			ReadAt:    row.ReadAt,
			ExpiresAt: row.ExpiresAt,
			CreatedAt: row.CreatedAt,
		})
	}

	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string, now time.Time) (int, error) {
	const op = "internal.repository.postgres.notification.CountUnread"

	query, args, err := r.sq.Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_read": false}).
		Where(sq.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string, now time.Time) (bool, error) {
	const op = "internal.repository.postgres.notification.MarkRead"

	query, args, err := r.sq.Update("notifications").
		Set("is_read", true).
		Set("read_at", sq.Expr("COALESCE(read_at, ?)", now)).
		Where(sq.Eq{"id": notificationID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return rows == 1, nil
}
