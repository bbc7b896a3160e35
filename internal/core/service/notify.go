package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// RefreshFunc re-syncs a list after a dialog closes.
type RefreshFunc func(ctx context.Context) error

// notice builds and sends notifications for one resource.
type notice struct {
	notifier ports.Notifier
	resource string
	now      func() time.Time
}

func (n notice) send(ctx context.Context, level domain.NotificationLevel, msg string) {
	if n.notifier == nil {
		return
	}
	n.notifier.Notify(ctx, domain.Notification{
		ID:       uuid.NewString(),
		Level:    level,
		Resource: n.resource,
		Message:  msg,
		At:       n.now().UTC(),
	})
}
