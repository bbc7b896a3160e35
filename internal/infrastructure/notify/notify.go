// Package notify delivers mutation outcomes to the operator and to the
// activity log.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// Log writes every notification to a zerolog logger.
type Log struct {
	log zerolog.Logger
}

var _ ports.Notifier = (*Log)(nil)

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log.With().Str("component", "notify").Logger()}
}

func (l *Log) Notify(_ context.Context, n domain.Notification) {
	ev := l.log.Info()
	if n.Level == domain.LevelFailure {
		ev = l.log.Warn()
	}
	ev.Str("notification_id", n.ID).
		Str("resource", n.Resource).
		Str("level", string(n.Level)).
		Msg(n.Message)
}

// Writer prints notifications as one line each, the way a toast would read.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

var _ ports.Notifier = (*Writer)(nil)

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) Notify(_ context.Context, n domain.Notification) {
	mark := "ok"
	if n.Level == domain.LevelFailure {
		mark = "error"
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, "[%s] %s\n", mark, n.Message)
}

// Multi fans a notification out to every notifier in order.
type Multi []ports.Notifier

var _ ports.Notifier = Multi(nil)

func (m Multi) Notify(ctx context.Context, n domain.Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
