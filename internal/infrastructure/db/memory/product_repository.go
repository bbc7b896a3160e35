package memory

import (
	"context"
	"sync"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

type ProductRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Product
	nextID int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{byID: make(map[int64]*domain.Product)}
}

func (r *ProductRepository) List(_ context.Context, page ports.Page) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	out := make([]*domain.Product, 0, len(ids))
	for _, id := range paginate(ids, page) {
		out = append(out, cloneProduct(r.byID[id]))
	}
	return out, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := cloneProduct(p)
	stored.ProductID = r.nextID
	r.byID[stored.ProductID] = stored
	return cloneProduct(stored), nil
}

func (r *ProductRepository) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	r.byID[p.ProductID] = cloneProduct(p)
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Image != nil {
		img := *p.Image
		clone.Image = &img
	}
	return &clone
}
