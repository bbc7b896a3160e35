package ports

import (
	"context"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// SessionStore keeps the session of a named profile between CLI runs.
// Load returns domain.ErrNoSession when nothing is stored.
type SessionStore interface {
	Save(ctx context.Context, profile string, s domain.Session) error
	Load(ctx context.Context, profile string) (domain.Session, error)
	Delete(ctx context.Context, profile string) error
}
