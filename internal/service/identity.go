package service

import (
	"financeqa/internal/auth"
	"financeqa/internal/errors"
)

var (
	// ErrAuthenticationRequired is returned when no caller identity is present.
	ErrAuthenticationRequired = errors.New(errors.ErrUnauthenticated, "authentication required")
	// ErrAdminRequired is returned when a non-admin calls an admin operation.
	ErrAdminRequired = errors.New(errors.ErrForbidden, "admin access required")
)

func requireAuthenticated(caller auth.Identity) error {
	if !caller.Authenticated() {
		return ErrAuthenticationRequired
	}
	return nil
}

func requireAdmin(caller auth.Identity) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
