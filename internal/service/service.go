package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

// Transactor starts transactions and runs plain reads outside of them.
type Transactor interface {
	sqlx.ExtContext
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type BaseService struct {
	db     Transactor
	log    *slog.Logger
	outbox repository.OutboxRepository
	now    func() time.Time
}

func NewBaseService(db Transactor, log *slog.Logger, outbox repository.OutboxRepository) BaseService {
	return BaseService{
		db:     db,
		log:    log,
		outbox: outbox,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the clock used to stamp state changes.
func (s *BaseService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *BaseService) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

// emit stores events in the outbox of the running transaction.
func (s *BaseService) emit(ctx context.Context, tx *sqlx.Tx, op string, events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	if err := s.outbox.Append(ctx, tx, events...); err != nil {
		return fmt.Errorf("%s: failed to append events to outbox: %w", op, err)
	}

	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
