package service

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newMockDBAndTx(t *testing.T) (*sqlx.DB, *sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, smock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	smock.ExpectBegin()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	return sqlxDB, tx, smock
}

// expectTx makes the transactor hand out one transaction that either commits or rolls back.
func expectTx(t *testing.T, transactor *TransactorMock, commit bool) *sqlx.Tx {
	t.Helper()

	_, tx, smock := newMockDBAndTx(t)
	if commit {
		smock.ExpectCommit()
	} else {
		smock.ExpectRollback()
	}

	transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(tx, nil).Once()

	return tx
}

func newTestBase(transactor *TransactorMock, outbox *OutboxRepositoryMock) BaseService {
	base := NewBaseService(transactor, slog.New(slog.NewTextHandler(io.Discard, nil)), outbox)
	base.SetClock(func() time.Time { return testNow })

	return base
}

func approved(id, adminID string) *domain.Hospital {
	return &domain.Hospital{ID: id, Name: "City Hospital", City: "Almaty", AdminUserID: adminID, Status: domain.HospitalApproved}
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

var (
	donorActor     = domain.Actor{ID: "d1", Role: domain.RoleDonor}
	recipientActor = domain.Actor{ID: "rc1", Role: domain.RoleRecipient}
	hospitalActor  = domain.Actor{ID: "ha1", Role: domain.RoleHospitalAdmin}
	adminActor     = domain.Actor{ID: "adm1", Role: domain.RoleAdmin}
)
