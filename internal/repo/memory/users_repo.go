package memory

import (
	"context"
	"sync"

	"github.com/lojaweb/catalog/internal/domain/user"
)

type UsersRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]user.User
	byLogin map[string]int64
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID:  1,
		byID:    make(map[int64]user.User),
		byLogin: make(map[string]int64),
	}
}

func (r *UsersRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[u.Login]; taken {
		return user.User{}, user.ErrLoginTaken
	}

	u.ID = r.nextID
	r.nextID++
	u.Roles = user.NewRoles(u.Roles.Slice()...)

	r.byID[u.ID] = u
	r.byLogin[u.Login] = u.ID

	return u, nil
}

func (r *UsersRepo) GetByLogin(_ context.Context, login string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[login]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UsersRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetRoles(ctx context.Context, id int64) (user.Roles, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Roles, nil
}
