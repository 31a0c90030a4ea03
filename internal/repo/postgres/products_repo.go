package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lojaweb/catalog/internal/domain/product"
	"github.com/lojaweb/catalog/internal/observability"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewProductsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProductsRepo {
	return &ProductsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *ProductsRepo) observe(op string, fn func() error) error {
	return r.prom.ObserveDB(op, fn)
}

func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0)

	err := r.observe("products.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT id, descricao, valor, marca FROM produtos ORDER BY id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p product.Product

			if err := rows.Scan(&p.ID, &p.Description, &p.Price, &p.Brand); err != nil {
				return err
			}
			out = append(out, p)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id int64) (product.Product, error) {
	var p product.Product

	err := r.observe("products.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, descricao, valor, marca FROM produtos WHERE id = $1`, id,
		).Scan(&p.ID, &p.Description, &p.Price, &p.Brand)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		return product.Product{}, err
	}

	return p, nil
}

// Create assigns max(id)+1 under a table lock so concurrent inserts never
// compute the same id.
func (r *ProductsRepo) Create(ctx context.Context, in product.Input) (product.Product, error) {
	var p product.Product

	err := r.observe("products.create", func() error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if _, err := tx.Exec(ctx, `LOCK TABLE produtos IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO produtos (id, descricao, valor, marca)
			SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3 FROM produtos
			RETURNING id, descricao, valor, marca`,
			in.Description, in.Price, in.Brand,
		).Scan(&p.ID, &p.Description, &p.Price, &p.Brand)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id int64, in product.Input) (product.Product, error) {
	var p product.Product

	err := r.observe("products.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE produtos
				SET descricao = $2,
					valor = $3,
					marca = $4
			WHERE id = $1
			RETURNING id, descricao, valor, marca`,
			id, in.Description, in.Price, in.Brand,
		).Scan(&p.ID, &p.Description, &p.Price, &p.Brand)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Delete(ctx context.Context, id int64) error {
	var affected int64

	err := r.observe("products.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		return product.ErrNotFound
	}

	return nil
}
