//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	seedHospital(t, "h1", domain.HospitalApproved)
	seedRequest(t, "r1", "h1", domain.BloodTypeABNeg, intPtr(2))

	request, err := repo.GetRequestByID(ctx, testDB, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, request.Status)
	assert.Equal(t, domain.BloodTypeABNeg, request.BloodType)
	require.NotNil(t, request.UnitsNeeded)
	assert.Equal(t, 2, *request.UnitsNeeded)
	assert.Zero(t, request.UnitsFulfilled)

	err = inTx(t, func(tx *sqlx.Tx) error {
		dup := *request
		return repo.CreateRequest(ctx, tx, &dup)
	})
	var existsErr *apperrors.AlreadyExistsError
	require.ErrorAs(t, err, &existsErr)

	err = inTx(t, func(tx *sqlx.Tx) error {
		orphan := *request
		orphan.ID = "r2"
		orphan.HospitalID = "missing"
		return repo.CreateRequest(ctx, tx, &orphan)
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.GetRequestByID(ctx, testDB, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestRepository_UpdateRequest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	seedHospital(t, "h1", domain.HospitalApproved)
	seedHospital(t, "h2", domain.HospitalApproved)
	seedRequest(t, "r1", "h1", domain.BloodTypeOPos, intPtr(2))

	err := inTx(t, func(tx *sqlx.Tx) error {
		request, err := repo.GetRequestByIDWithLock(ctx, tx, "r1")
		if err != nil {
			return err
		}

		by := "admin-h1"
		to := "h2"
		request.HospitalID = "h2"
		request.RedirectedBy = &by
		request.RedirectedTo = &to
		request.UpdatedAt = seedTime.Add(time.Hour)

		if err := repo.UpdateRequest(ctx, tx, request); err != nil {
			return err
		}

		return repo.CreateRedirect(ctx, tx, &domain.RequestRedirect{
			ID:             "rd1",
			RequestID:      "r1",
			FromHospitalID: "h1",
			ToHospitalID:   "h2",
			RedirectedBy:   by,
			RedirectedAt:   request.UpdatedAt,
		})
	})
	require.NoError(t, err)

	request, err := repo.GetRequestByID(ctx, testDB, "r1")
	require.NoError(t, err)
	assert.Equal(t, "h2", request.HospitalID)
	require.NotNil(t, request.RedirectedTo)
	assert.Equal(t, "h2", *request.RedirectedTo)

	err = inTx(t, func(tx *sqlx.Tx) error {
		request.UnitsFulfilled = 3
		return repo.UpdateRequest(ctx, tx, request)
	})
	assert.ErrorIs(t, err, apperrors.ErrOverAllocation)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = inTx(t, func(tx *sqlx.Tx) error {
		ghost := *request
		ghost.ID = "ghost"
		ghost.UnitsFulfilled = 0
		return repo.UpdateRequest(ctx, tx, &ghost)
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestRepository_ListRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	seedHospital(t, "h1", domain.HospitalApproved)
	seedHospital(t, "h2", domain.HospitalApproved)
	seedRequest(t, "r-high", "h1", domain.BloodTypeOPos, intPtr(1))
	seedRequest(t, "r-other", "h2", domain.BloodTypeOPos, intPtr(1))
	seedRequest(t, "r-crit", "h1", domain.BloodTypeANeg, intPtr(1))
	seedRequest(t, "r-low", "h1", domain.BloodTypeOPos, intPtr(1))

	_, err := testDB.Exec("UPDATE blood_requests SET urgency = 'critical' WHERE id = 'r-crit'")
	require.NoError(t, err)
	_, err = testDB.Exec("UPDATE blood_requests SET urgency = 'low', status = 'cancelled' WHERE id = 'r-low'")
	require.NoError(t, err)

	requests, err := repo.ListRequests(ctx, domain.RequestFilter{HospitalID: "h1", Limit: 50})
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "r-crit", requests[0].ID)
	assert.Equal(t, "r-high", requests[1].ID)
	assert.Equal(t, "r-low", requests[2].ID)

	requests, err = repo.ListRequests(ctx, domain.RequestFilter{
		HospitalID: "h1",
		Status:     domain.RequestPending,
		BloodType:  domain.BloodTypeOPos,
		Limit:      50,
	})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "r-high", requests[0].ID)

	requests, err = repo.ListRequests(ctx, domain.RequestFilter{HospitalID: "h1", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "r-high", requests[0].ID)

	byID, err := repo.GetRequestsByIDs(ctx, testDB, []string{"r-other", "r-crit"})
	require.NoError(t, err)
	assert.Len(t, byID, 2)
}

func TestRequestRepository_DemandSince(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	seedHospital(t, "h1", domain.HospitalApproved)
	seedRequest(t, "r1", "h1", domain.BloodTypeOPos, intPtr(4))
	seedRequest(t, "r2", "h1", domain.BloodTypeOPos, intPtr(2))
	seedRequest(t, "r3", "h1", domain.BloodTypeOPos, nil)
	seedRequest(t, "r-old", "h1", domain.BloodTypeOPos, intPtr(9))

	_, err := testDB.Exec("UPDATE blood_requests SET status = 'fulfilled', units_fulfilled = 2 WHERE id = 'r2'")
	require.NoError(t, err)
	_, err = testDB.Exec("UPDATE blood_requests SET created_at = $1 WHERE id = 'r-old'", seedTime.AddDate(0, 0, -40))
	require.NoError(t, err)

	demand, err := repo.DemandSince(ctx, seedTime.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, []domain.BloodTypeDemand{
		{BloodType: domain.BloodTypeOPos, TotalRequests: 3, UnitsNeeded: 6, Fulfilled: 1},
	}, demand)
}

func TestRequestRepository_Matches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	seedHospital(t, "h1", domain.HospitalApproved)
	seedRequest(t, "r1", "h1", domain.BloodTypeOPos, nil)
	seedDonor(t, "d1", domain.BloodTypeOPos, nil)
	seedDonor(t, "d2", domain.BloodTypeONeg, nil)

	var first, second []string
	err := inTx(t, func(tx *sqlx.Tx) error {
		var err error
		if first, err = repo.InsertMatches(ctx, tx, "r1", []string{"d1"}, seedTime); err != nil {
			return err
		}

		second, err = repo.InsertMatches(ctx, tx, "r1", []string{"d1", "d2"}, seedTime.Add(time.Minute))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, first)
	assert.Equal(t, []string{"d2"}, second, "an existing match is never duplicated")

	err = inTx(t, func(tx *sqlx.Tx) error {
		_, err := repo.InsertMatches(ctx, tx, "r1", []string{"ghost"}, seedTime)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	reason := "travelling"
	var accepted, acceptedAgain, declined, donated bool
	err = inTx(t, func(tx *sqlx.Tx) error {
		var err error
		if accepted, err = repo.RespondMatch(ctx, tx, "r1", "d1", domain.MatchAccepted, nil, seedTime); err != nil {
			return err
		}

		if acceptedAgain, err = repo.RespondMatch(ctx, tx, "r1", "d1", domain.MatchDeclined, &reason, seedTime); err != nil {
			return err
		}

		if declined, err = repo.RespondMatch(ctx, tx, "r1", "d2", domain.MatchDeclined, &reason, seedTime); err != nil {
			return err
		}

		donated, err = repo.MarkDonated(ctx, tx, "r1", "d1")
		return err
	})
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.False(t, acceptedAgain, "a donor responds only once")
	assert.True(t, declined)
	assert.True(t, donated)

	match, err := repo.GetMatch(ctx, testDB, "r1", "d2")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchDeclined, match.Status)
	require.NotNil(t, match.DeclineReason)
	assert.Equal(t, "travelling", *match.DeclineReason)
	require.NotNil(t, match.RespondedAt)

	_, err = repo.GetMatch(ctx, testDB, "r1", "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	matches, err := repo.ListMatches(ctx, testDB, "r1")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "d1", matches[0].DonorID)
	assert.Equal(t, domain.MatchDonated, matches[0].Status)

	byDonor, err := repo.ListMatchesByDonor(ctx, "d1", []domain.MatchStatus{domain.MatchAccepted})
	require.NoError(t, err)
	assert.Empty(t, byDonor)

	byDonor, err = repo.ListMatchesByDonor(ctx, "d1", nil)
	require.NoError(t, err)
	assert.Len(t, byDonor, 1)
}
