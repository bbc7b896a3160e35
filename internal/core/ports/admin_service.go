package ports

import (
	"context"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// UserInput carries the editable fields of a user.
type UserInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Role      domain.Role
	// Password is only honoured on create.
	Password string
}

// ProductImageInput is the uploaded image of a product.
type ProductImageInput struct {
	FileName string
	Size     int64
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
	// Image replaces the stored image when non-nil.
	Image *ProductImageInput
}

// UserAdminService is the super_admin use-case surface for users.
type UserAdminService interface {
	List(ctx context.Context, page Page) ([]*domain.User, error)
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// ProductAdminService is the super_admin use-case surface for products.
type ProductAdminService interface {
	List(ctx context.Context, page Page) ([]*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
