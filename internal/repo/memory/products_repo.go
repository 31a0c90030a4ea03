package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lojaweb/catalog/internal/domain/product"
)

// ProductsRepo keeps the catalog in process memory. Each instance owns its
// own items; nothing is shared through package state.
type ProductsRepo struct {
	mu    sync.RWMutex
	items map[int64]product.Product
}

func NewProductsRepo(seed ...product.Product) *ProductsRepo {
	r := &ProductsRepo{
		items: make(map[int64]product.Product, len(seed)),
	}
	for _, p := range seed {
		r.items[p.ID] = p
	}
	return r
}

func (r *ProductsRepo) List(_ context.Context) ([]product.Product, error) {
	r.mu.RLock()
	out := make([]product.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ProductsRepo) GetByID(_ context.Context, id int64) (product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

// Create assigns max(id)+1, or 1 for an empty catalog.
func (r *ProductsRepo) Create(_ context.Context, in product.Input) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for id := range r.items {
		if id > maxID {
			maxID = id
		}
	}

	p := in.Apply(maxID + 1)
	r.items[p.ID] = p

	return p, nil
}

func (r *ProductsRepo) Update(_ context.Context, id int64, in product.Input) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return product.Product{}, product.ErrNotFound
	}

	p := in.Apply(id)
	r.items[id] = p

	return p, nil
}

func (r *ProductsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return product.ErrNotFound
	}
	delete(r.items, id)

	return nil
}
