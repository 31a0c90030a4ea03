package auth

import "github.com/lojaweb/catalog/internal/domain/user"

// Authorize permits only when roles contains required. An empty role set is denied.
func Authorize(roles user.Roles, required string) error {
	if len(roles) == 0 || !roles.Has(required) {
		return ErrForbidden
	}
	return nil
}
