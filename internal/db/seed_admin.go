package db

import (
	"context"
	"errors"

	"github.com/lojaweb/catalog/internal/config"
	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/security"
)

type UserSeeder interface {
	GetByLogin(ctx context.Context, login string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

// EnsureAdminUser creates the configured ADMIN account once. It is a no-op
// when ADMIN_LOGIN/ADMIN_PASSWORD are unset or the login already exists.
func EnsureAdminUser(ctx context.Context, users UserSeeder, cfg config.Config) (created bool, err error) {
	if cfg.AdminLogin == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err = users.GetByLogin(ctx, cfg.AdminLogin)

	if err == nil {
		return false, nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return false, err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return false, err
	}

	_, err = users.Create(ctx, user.User{
		Login:        cfg.AdminLogin,
		PasswordHash: hash,
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		Roles:        user.NewRoles(user.RoleAdmin, user.RoleUser),
	})

	if errors.Is(err, user.ErrLoginTaken) {
		// another instance won the race
		return false, nil
	}

	return err == nil, err
}
