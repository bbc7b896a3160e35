package ports

import (
	"context"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// Page restricts a repository listing. The zero value lists everything.
type Page struct {
	Page  int // 1-based
	Limit int
}

// UserRepository persists dashboard accounts for the reference API.
type UserRepository interface {
	List(ctx context.Context, page Page) ([]*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create assigns the UserID and returns the stored user.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
