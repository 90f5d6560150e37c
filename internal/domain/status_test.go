package domain

import (
	"errors"
	"testing"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatus_ValidateTransition(t *testing.T) {
	testCases := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{RequestPending, RequestNotifiedDonors, true},
		{RequestPending, RequestConfirmedByHospital, true},
		{RequestPending, RequestFulfilled, false},
		{RequestNotifiedDonors, RequestPending, false},
		{RequestNotifiedDonors, RequestCancelled, true},
		{RequestConfirmedByHospital, RequestPartiallyFulfilled, true},
		{RequestPartiallyFulfilled, RequestFulfilled, true},
		{RequestPartiallyFulfilled, RequestUnavailable, true},
		{RequestFulfilled, RequestCancelled, false},
		{RequestCancelled, RequestPending, false},
		{RequestUnavailable, RequestConfirmedByHospital, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			err := tc.from.ValidateTransition(tc.to)

			if tc.allowed {
				assert.NoError(t, err)
				return
			}

			var transitionErr *apperrors.TransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, string(tc.from), transitionErr.From)
			assert.Equal(t, string(tc.to), transitionErr.To)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		})
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	for _, s := range []RequestStatus{RequestFulfilled, RequestUnavailable, RequestCancelled} {
		assert.True(t, s.IsTerminal(), s)
		assert.Empty(t, requestTransitions[s], s)
	}

	for _, s := range []RequestStatus{RequestPending, RequestNotifiedDonors, RequestConfirmedByHospital, RequestPartiallyFulfilled} {
		assert.False(t, s.IsTerminal(), s)
	}
}

func TestProgressStatus(t *testing.T) {
	five := 5

	assert.Equal(t, RequestConfirmedByHospital, ProgressStatus(nil, 3))
	assert.Equal(t, RequestConfirmedByHospital, ProgressStatus(&five, 0))
	assert.Equal(t, RequestPartiallyFulfilled, ProgressStatus(&five, 3))
	assert.Equal(t, RequestFulfilled, ProgressStatus(&five, 5))
}

func TestMatchStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, MatchNotified.CanTransitionTo(MatchAccepted))
	assert.True(t, MatchNotified.CanTransitionTo(MatchDeclined))
	assert.True(t, MatchAccepted.CanTransitionTo(MatchDonated))
	assert.False(t, MatchAccepted.CanTransitionTo(MatchDeclined))
	assert.False(t, MatchDeclined.CanTransitionTo(MatchAccepted))
	assert.False(t, MatchDonated.CanTransitionTo(MatchNotified))
}
