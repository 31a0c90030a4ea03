package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/observability"
)

const uniqueViolation = "23505"

type UsersRepo struct {
	pool  *pgxpool.Pool
	prom  *observability.Prom
	delim string
}

// NewUsersRepo stores roles as one string joined with delim.
func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom, delim string) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom, delim: delim}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	return r.prom.ObserveDB(op, fn)
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	err := r.observe("users.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO usuarios (nome, email, login, senha, roles)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			u.Name, u.Email, u.Login, u.PasswordHash, u.Roles.String(r.delim),
		).Scan(&u.ID)
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.User{}, user.ErrLoginTaken
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByLogin(ctx context.Context, login string) (user.User, error) {
	return r.getOne(ctx, "users.get_by_login", `WHERE login = $1`, login)
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.getOne(ctx, "users.get_by_id", `WHERE id = $1`, id)
}

// GetRoles loads only the role column. NULL or blank roles yield an empty set.
func (r *UsersRepo) GetRoles(ctx context.Context, id int64) (user.Roles, error) {
	var raw *string

	err := r.observe("users.get_roles", func() error {
		return r.pool.QueryRow(ctx, `SELECT roles FROM usuarios WHERE id = $1`, id).Scan(&raw)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	if raw == nil {
		return user.Roles{}, nil
	}

	return user.ParseRoles(*raw, r.delim), nil
}

func (r *UsersRepo) getOne(ctx context.Context, op, where string, arg any) (user.User, error) {
	var (
		u     user.User
		roles *string
	)

	err := r.observe(op, func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, nome, email, login, senha, roles FROM usuarios `+where, arg,
		).Scan(&u.ID, &u.Name, &u.Email, &u.Login, &u.PasswordHash, &roles)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	u.Roles = user.Roles{}
	if roles != nil {
		u.Roles = user.ParseRoles(*roles, r.delim)
	}

	return u, nil
}
