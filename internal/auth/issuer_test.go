package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lojaweb/catalog/internal/auth"
	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	getFn func(ctx context.Context, login string) (user.User, error)
}

func (f *fakeUsers) GetByLogin(ctx context.Context, login string) (user.User, error) {
	return f.getFn(ctx, login)
}

func storedUser(t *testing.T, password string) user.User {
	t.Helper()

	hash, err := security.HashPasswordCost(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	return user.User{ID: 3, Login: "a", PasswordHash: hash, Name: "A", Roles: user.NewRoles(user.RoleUser)}
}

func TestIssuer_Login(t *testing.T) {
	stored := storedUser(t, "right")
	manager := auth.NewManager("test-secret", time.Hour)

	tests := []struct {
		name     string
		login    string
		password string
		getFn    func(ctx context.Context, login string) (user.User, error)
		wantErr  error
	}{
		{
			name:     "success",
			login:    "a",
			password: "right",
			getFn: func(ctx context.Context, login string) (user.User, error) {
				return stored, nil
			},
		},
		{
			name:     "wrong_password",
			login:    "a",
			password: "wrong",
			getFn: func(ctx context.Context, login string) (user.User, error) {
				return stored, nil
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "unknown_login",
			login:    "ghost",
			password: "right",
			getFn: func(ctx context.Context, login string) (user.User, error) {
				return user.User{}, user.ErrNotFound
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := auth.NewIssuer(&fakeUsers{getFn: tt.getFn}, manager)

			session, err := issuer.Login(context.Background(), tt.login, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("login: %v", err)
			}

			claims, err := manager.VerifyAccessToken(session.Token)
			if err != nil {
				t.Fatalf("issued token rejected: %v", err)
			}

			if claims.UserID != stored.ID || session.User.Login != "a" {
				t.Fatalf("unexpected session: %+v claims=%+v", session, claims)
			}
		})
	}
}

func TestIssuer_StorageErrorIsNotInvalidCredentials(t *testing.T) {
	boom := errors.New("connection refused")
	issuer := auth.NewIssuer(&fakeUsers{getFn: func(ctx context.Context, login string) (user.User, error) {
		return user.User{}, boom
	}}, auth.NewManager("test-secret", time.Hour))

	_, err := issuer.Login(context.Background(), "a", "b")

	if !errors.Is(err, boom) || errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("got %v, want wrapped storage error", err)
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name  string
		roles user.Roles
		ok    bool
	}{
		{name: "admin", roles: user.NewRoles("USER", "ADMIN"), ok: true},
		{name: "user_only", roles: user.NewRoles("USER"), ok: false},
		{name: "no_roles", roles: user.Roles{}, ok: false},
		{name: "nil_roles", roles: nil, ok: false},
	}

	for _, tt := range tests {
		err := auth.Authorize(tt.roles, user.RoleAdmin)

		if tt.ok && err != nil {
			t.Fatalf("%s: unexpected %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, auth.ErrForbidden) {
			t.Fatalf("%s: got %v, want ErrForbidden", tt.name, err)
		}
	}
}
