package domain

import "github.com/YusovID/bloodbank-service/internal/apperrors"

type RequestStatus string

const (
	RequestPending             RequestStatus = "pending"
	RequestNotifiedDonors      RequestStatus = "notified_donors"
	RequestConfirmedByHospital RequestStatus = "confirmed_by_hospital"
	RequestPartiallyFulfilled  RequestStatus = "partially_fulfilled"
	RequestFulfilled           RequestStatus = "fulfilled"
	RequestUnavailable         RequestStatus = "unavailable"
	RequestCancelled           RequestStatus = "cancelled"
)

// requestTransitions is the only place that decides which request status moves are legal.
// Terminal statuses have no entry.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending: {
		RequestNotifiedDonors, RequestConfirmedByHospital, RequestUnavailable, RequestCancelled,
	},
	RequestNotifiedDonors: {
		RequestConfirmedByHospital, RequestUnavailable, RequestCancelled,
	},
	RequestConfirmedByHospital: {
		RequestConfirmedByHospital, RequestPartiallyFulfilled, RequestFulfilled,
		RequestUnavailable, RequestCancelled,
	},
	RequestPartiallyFulfilled: {
		RequestConfirmedByHospital, RequestPartiallyFulfilled, RequestFulfilled,
		RequestUnavailable, RequestCancelled,
	},
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestNotifiedDonors, RequestConfirmedByHospital,
		RequestPartiallyFulfilled, RequestFulfilled, RequestUnavailable, RequestCancelled:
		return true
	}

	return false
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestFulfilled || s == RequestUnavailable || s == RequestCancelled
}

func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// ValidateTransition returns a *apperrors.TransitionError when s cannot move to next.
func (s RequestStatus) ValidateTransition(next RequestStatus) error {
	if !s.CanTransitionTo(next) {
		return &apperrors.TransitionError{Entity: "request", From: string(s), To: string(next)}
	}

	return nil
}

// ProgressStatus is the status a request lands in after units were assigned to it.
// Requests without a unit target stay confirmed until the hospital confirms fulfillment.
func ProgressStatus(unitsNeeded *int, unitsFulfilled int) RequestStatus {
	switch {
	case unitsNeeded == nil:
		return RequestConfirmedByHospital
	case unitsFulfilled >= *unitsNeeded:
		return RequestFulfilled
	case unitsFulfilled > 0:
		return RequestPartiallyFulfilled
	default:
		return RequestConfirmedByHospital
	}
}

type MatchStatus string

const (
	MatchNotified MatchStatus = "notified"
	MatchAccepted MatchStatus = "accepted"
	MatchDeclined MatchStatus = "declined"
	MatchDonated  MatchStatus = "donated"
)

var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchNotified: {MatchAccepted, MatchDeclined},
	MatchAccepted: {MatchDonated},
}

func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	for _, allowed := range matchTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type InventoryStatus string

const (
	InventoryAvailable InventoryStatus = "available"
	InventoryReserved  InventoryStatus = "reserved"
	InventoryUsed      InventoryStatus = "used"
	InventoryExpired   InventoryStatus = "expired"
	InventoryDiscarded InventoryStatus = "discarded"
)

func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryAvailable, InventoryReserved, InventoryUsed, InventoryExpired, InventoryDiscarded:
		return true
	}

	return false
}

func (s InventoryStatus) IsTerminal() bool {
	return s == InventoryUsed || s == InventoryExpired || s == InventoryDiscarded
}

type HospitalStatus string

const (
	HospitalPending   HospitalStatus = "pending"
	HospitalApproved  HospitalStatus = "approved"
	HospitalRejected  HospitalStatus = "rejected"
	HospitalSuspended HospitalStatus = "suspended"
)
