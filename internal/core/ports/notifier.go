package ports

import (
	"context"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// Notifier surfaces mutation outcomes to the operator. Implementations must
// not block the caller on slow sinks.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// ActivityRepository persists notifications as an activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, n domain.Notification) error
	Recent(ctx context.Context, limit int) ([]domain.Notification, error)
}
