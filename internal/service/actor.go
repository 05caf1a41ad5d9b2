package service

import (
	"backend/internal/model"

	"github.com/google/uuid"
)

// Actor is the authenticated identity performing an operation, taken from
// the verified JWT claims. Every mutating service method checks capability
// against the actor itself instead of trusting the transport layer.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

func (a Actor) IsStaff() bool {
	return a.Role == model.RoleStaff
}

func (a Actor) IsCustomer() bool {
	return a.Role == model.RoleCustomer
}
