package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// DeleteConfirmation is the two-step destructive action on one row: open a
// prompt, then delete only on Confirm.
type DeleteConfirmation struct {
	client  ports.ResourceClient
	res     domain.Resource
	session domain.Session
	refresh RefreshFunc
	notice  notice
	log     zerolog.Logger

	mu       sync.Mutex
	open     bool
	targetID string
}

// NewDeleteConfirmation returns a closed prompt. refresh is invoked every
// time the prompt closes.
func NewDeleteConfirmation(
	client ports.ResourceClient,
	res domain.Resource,
	session domain.Session,
	notifier ports.Notifier,
	refresh RefreshFunc,
	log zerolog.Logger,
) *DeleteConfirmation {
	return &DeleteConfirmation{
		client:  client,
		res:     res,
		session: session,
		refresh: refresh,
		notice:  notice{notifier: notifier, resource: res.Name, now: time.Now},
		log:     log.With().Str("resource", res.Name).Str("component", "delete").Logger(),
	}
}

// Open shows the prompt for the row with the given id.
func (d *DeleteConfirmation) Open(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.targetID = id
}

// IsOpen reports whether the prompt is showing, and for which row.
func (d *DeleteConfirmation) IsOpen() (bool, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open, d.targetID
}

// Confirm deletes the target row, reports the outcome, and closes the prompt.
// The prompt closes and the list re-syncs whether or not the delete
// succeeded; the delete error is returned so the caller can surface it.
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return domain.ErrNothingToDelete
	}
	id := d.targetID
	d.mu.Unlock()

	err := d.client.Delete(ctx, d.res, d.session, id)
	if err != nil {
		d.log.Warn().Err(err).Str("id", id).Msg("delete failed")
		d.notice.send(ctx, domain.LevelFailure, d.res.Messages.DeleteFailed)
		err = fmt.Errorf("delete %s %s: %w", d.res.Singular, id, err)
	} else {
		d.log.Info().Str("id", id).Msg("row deleted")
		d.notice.send(ctx, domain.LevelSuccess, d.res.Messages.Deleted)
	}

	d.Close(ctx)
	return err
}

// Cancel closes the prompt without deleting.
func (d *DeleteConfirmation) Cancel(ctx context.Context) {
	d.Close(ctx)
}

// Close hides the prompt and re-syncs the list.
func (d *DeleteConfirmation) Close(ctx context.Context) {
	d.mu.Lock()
	d.open = false
	d.targetID = ""
	d.mu.Unlock()

	if d.refresh == nil {
		return
	}
	if err := d.refresh(ctx); err != nil {
		d.log.Warn().Err(err).Msg("refresh after close failed")
	}
}
