package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/repo/memory"
)

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	r := memory.NewUsersRepo()

	created, err := r.Create(ctx, user.User{Login: "ana", Name: "Ana", Roles: user.NewRoles(user.RoleAdmin)})
	if err != nil || created.ID != 1 {
		t.Fatalf("create: (%+v, %v)", created, err)
	}

	if _, err := r.Create(ctx, user.User{Login: "ana"}); !errors.Is(err, user.ErrLoginTaken) {
		t.Fatalf("duplicate login: got %v", err)
	}

	// logins are case-sensitive
	if _, err := r.Create(ctx, user.User{Login: "ANA"}); err != nil {
		t.Fatalf("distinct case login: %v", err)
	}

	if _, err := r.GetByLogin(ctx, "nobody"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("missing login: got %v", err)
	}

	roles, err := r.GetRoles(ctx, created.ID)
	if err != nil || !roles.Has(user.RoleAdmin) {
		t.Fatalf("roles: (%v, %v)", roles, err)
	}

	if _, err := r.GetRoles(ctx, 404); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("missing id: got %v", err)
	}
}
