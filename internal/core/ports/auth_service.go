package ports

import (
	"context"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// AuthService issues bearer tokens for the reference API.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
