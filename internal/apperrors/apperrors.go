package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("conflict with current state")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("actor identity is missing")
	ErrForbidden         = errors.New("actor is not allowed to perform this action")

	ErrInvalidRequest = errors.New("invalid request")

	ErrAlreadyResponded    = fmt.Errorf("%w: donor already responded to this request", ErrConflict)
	ErrDonationLogged      = fmt.Errorf("%w: donation already logged for this request", ErrConflict)
	ErrOverAllocation      = fmt.Errorf("%w: assigned units exceed units needed", ErrConflict)
	ErrHospitalNotApproved = fmt.Errorf("%w: hospital is not approved", ErrValidation)
	ErrNotMatched          = fmt.Errorf("%w: donor was not matched to this request", ErrForbidden)
)

// TransitionError reports a rejected request or match status change.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from '%s' to '%s'", e.Entity, e.From, e.To)
}
func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// UnitUnavailableError is returned when an inventory unit cannot be reserved.
type UnitUnavailableError struct {
	UnitID string
	Reason string
}

func (e *UnitUnavailableError) Error() string {
	return fmt.Sprintf("inventory unit '%s' cannot be reserved: %s", e.UnitID, e.Reason)
}
func (e *UnitUnavailableError) Is(target error) bool { return target == ErrConflict }

// AlreadyExistsError reports a unique constraint collision on an entity.
type AlreadyExistsError struct {
	Entity string
	ID     string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Entity, e.ID)
}
func (e *AlreadyExistsError) Is(target error) bool { return target == ErrConflict }
