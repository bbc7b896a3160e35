package ports

import (
	"context"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// ProductRepository persists catalogue entries for the reference API.
type ProductRepository interface {
	List(ctx context.Context, page Page) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// Create assigns the ProductID and returns the stored product.
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}
