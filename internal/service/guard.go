package service

import (
	"github.com/google/uuid"

	"github.com/homeboardapp/backend/internal/apperrors"
	"github.com/homeboardapp/backend/internal/models"
)

// Operation is the kind of access being attempted on a scoped resource.
type Operation int

const (
	OpRead Operation = iota
	OpCreate
	OpUpdate
	OpDelete
)

// HouseholdScoped is any resource owned by a household. A nil owning id means
// the row is unowned (system values), which no active household ever matches.
type HouseholdScoped interface {
	OwningHouseholdID() *uuid.UUID
}

// Authorize decides whether an operation on resource is allowed for the given
// active household. Create has no existing resource to compare, so it is
// gated on having any active household at all; every other operation requires
// the resource's owning household to be the active one, compared by id.
//
// Handlers run this after locating the resource by identifier, so a denial is
// forbidden (403), never not-found.
func Authorize(resource HouseholdScoped, active *models.Household, op Operation) error {
	if active == nil {
		if op == OpCreate {
			return apperrors.ErrNoActiveHousehold
		}
		return apperrors.ErrForbidden
	}
	if op == OpCreate {
		return nil
	}

	owner := resource.OwningHouseholdID()
	if owner == nil || *owner != active.ID {
		return apperrors.ErrForbidden
	}
	return nil
}
