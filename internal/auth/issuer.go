package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/security"
)

type UserFinder interface {
	GetByLogin(ctx context.Context, login string) (user.User, error)
}

type TokenGenerator interface {
	GenerateAccessToken(userID int64) (string, time.Time, error)
}

type Session struct {
	User      user.User
	Token     string
	ExpiresAt time.Time
}

// Issuer exchanges login credentials for an access token.
type Issuer struct {
	users  UserFinder
	tokens TokenGenerator
}

func NewIssuer(users UserFinder, tokens TokenGenerator) *Issuer {
	return &Issuer{users: users, tokens: tokens}
}

// Login returns ErrInvalidCredentials for both an unknown login and a wrong
// password. Other lookup failures are returned wrapped.
func (i *Issuer) Login(ctx context.Context, login, password string) (Session, error) {
	u, err := i.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := security.CheckPassword(u.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := i.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return Session{}, err
	}

	return Session{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
