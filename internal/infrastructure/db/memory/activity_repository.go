package memory

import (
	"context"
	"sync"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// ActivityRepository keeps the activity log in a slice.
type ActivityRepository struct {
	mu      sync.Mutex
	entries []domain.Notification
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Insert(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, n)
	return nil
}

// Recent returns the newest entries first.
func (r *ActivityRepository) Recent(_ context.Context, limit int) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Notification, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
