package ports

import (
	"context"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// ListOptions requests one page of a collection from the server. The zero
// value asks for the whole collection.
type ListOptions struct {
	Page  int // 1-based
	Limit int
}

// ResourceClient performs one authenticated operation against a collection
// or one of its rows. Every operation is attempted exactly once.
type ResourceClient interface {
	List(ctx context.Context, res domain.Resource, s domain.Session, opts ListOptions) ([]domain.Row, error)
	Create(ctx context.Context, res domain.Resource, s domain.Session, payload domain.Payload) error
	Update(ctx context.Context, res domain.Resource, s domain.Session, id string, payload domain.Payload) error
	Delete(ctx context.Context, res domain.Resource, s domain.Session, id string) error
}
