package auth

import (
	"github.com/google/uuid"

	"financeqa/internal/model"
)

// Identity is the authenticated caller passed explicitly into every service
// operation.
type Identity struct {
	UserID uuid.UUID
	Role   model.Role
}

// Authenticated reports whether the identity names a user.
func (i Identity) Authenticated() bool {
	return i.UserID != uuid.Nil
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}
