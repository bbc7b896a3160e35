package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
	"github.com/99minutos/admin-dashboard/internal/infrastructure/queue"
)

// Activity records notifications in an activity log without blocking the
// caller. Writes go through a sharded dispatcher so each resource's entries
// are stored in order.
type Activity struct {
	dispatcher *queue.Dispatcher
	log        zerolog.Logger
}

var _ ports.Notifier = (*Activity)(nil)

// NewActivity starts workers writing to repo. They run until ctx is cancelled
// or Close is called.
func NewActivity(ctx context.Context, repo ports.ActivityRepository, workers int, log zerolog.Logger) *Activity {
	log = log.With().Str("component", "activity").Logger()
	d := queue.NewDispatcher(workers, repo.Insert, log)
	d.Start(ctx)
	return &Activity{dispatcher: d, log: log}
}

func (a *Activity) Notify(_ context.Context, n domain.Notification) {
	if !a.dispatcher.Enqueue(n) {
		a.log.Debug().Str("notification_id", n.ID).Msg("activity entry not recorded")
	}
}

// Close flushes queued entries and stops the workers.
func (a *Activity) Close() {
	a.dispatcher.Close()
}
