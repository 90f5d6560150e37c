package service

import (
	"fmt"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
)

func requireActor(actor domain.Actor) error {
	if actor.ID == "" || !actor.Role.Valid() {
		return apperrors.ErrUnauthorized
	}

	return nil
}

func requireRole(actor domain.Actor, roles ...domain.Role) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}

	return fmt.Errorf("%w: role '%s' cannot perform this action", apperrors.ErrForbidden, actor.Role)
}

// requireSelfOrAdmin lets a donor act on its own profile and admins act on any.
func requireSelfOrAdmin(actor domain.Actor, donorID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	if actor.IsAdmin() || (actor.Role == domain.RoleDonor && actor.ID == donorID) {
		return nil
	}

	return fmt.Errorf("%w: donor profile belongs to another user", apperrors.ErrForbidden)
}

// requireHospitalStaff allows the hospital's own admin, or a platform admin when allowAdmin is set.
func requireHospitalStaff(actor domain.Actor, hospital *domain.Hospital, allowAdmin bool) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	if allowAdmin && actor.IsAdmin() {
		return nil
	}

	if actor.Role == domain.RoleHospitalAdmin && hospital.AdminUserID == actor.ID {
		return nil
	}

	return fmt.Errorf("%w: hospital '%s' is managed by another user", apperrors.ErrForbidden, hospital.ID)
}
