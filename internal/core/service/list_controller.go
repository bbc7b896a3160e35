package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// ListStatus is the display state of a list.
type ListStatus int

const (
	ListIdle ListStatus = iota
	ListReady
	ListError
)

func (s ListStatus) String() string {
	switch s {
	case ListReady:
		return "ready"
	case ListError:
		return "error"
	default:
		return "idle"
	}
}

// ListOption customises a ListController.
type ListOption func(*ListController)

// WithServerPaging makes Refresh request only the current page from the
// server instead of the whole collection.
func WithServerPaging() ListOption {
	return func(c *ListController) { c.serverPaging = true }
}

// ListController owns the local copy of one collection and its page cursor.
// The server response is authoritative: every successful refresh replaces the
// whole row set.
type ListController struct {
	client       ports.ResourceClient
	res          domain.Resource
	session      domain.Session
	log          zerolog.Logger
	serverPaging bool

	mu       sync.RWMutex
	rows     []domain.Row
	page     domain.PageState
	filter   []string
	status   ListStatus
	err      error
	inflight int

	// started numbers refreshes in the order they were issued; succeeded is
	// the number of the newest one that completed without error.
	started   uint64
	succeeded uint64
}

// NewListController returns a controller in the Idle state with the default
// page cursor.
func NewListController(
	client ports.ResourceClient,
	res domain.Resource,
	session domain.Session,
	log zerolog.Logger,
	opts ...ListOption,
) *ListController {
	c := &ListController{
		client:  client,
		res:     res,
		session: session,
		log:     log.With().Str("resource", res.Name).Logger(),
		page:    domain.DefaultPageState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh fetches the collection and replaces the local rows with the
// response, even when it is empty. When refreshes overlap, the successful
// response that resolves last is the one kept. A failed refresh moves the
// list into the Error state and keeps the rows of the last successful one,
// unless a refresh issued after it has already succeeded.
func (c *ListController) Refresh(ctx context.Context) ([]domain.Row, error) {
	c.mu.Lock()
	c.inflight++
	c.started++
	seq := c.started
	opts := c.listOptions()
	c.mu.Unlock()

	rows, err := c.client.List(ctx, c.res, c.session, opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if err != nil {
		if c.succeeded > seq {
			c.log.Debug().Err(err).Msg("stale list refresh failed")
		} else {
			c.status = ListError
			c.err = err
			c.log.Warn().Err(err).Msg("list refresh failed")
		}
		return nil, fmt.Errorf("refresh %s: %w", c.res.Name, err)
	}

	if rows == nil {
		rows = []domain.Row{}
	}
	c.rows = rows
	c.status = ListReady
	c.err = nil
	c.succeeded = max(c.succeeded, seq)

	c.log.Debug().Int("rows", len(rows)).Msg("list refreshed")
	return copyRows(rows), nil
}

// Resync refreshes the list and discards the rows. It is the refresh
// callback handed to forms and delete confirmations.
func (c *ListController) Resync(ctx context.Context) error {
	_, err := c.Refresh(ctx)
	return err
}

// SetPageState moves the page cursor. Changing the page size always goes
// back to the first page. No request is made.
func (c *ListController) SetPageState(p domain.PageState) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p.PageSize != c.page.PageSize {
		p.PageIndex = 0
	}
	c.page = p
	return nil
}

// PageState returns the current cursor.
func (c *ListController) PageState() domain.PageState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// Rows returns every row held locally.
func (c *ListController) Rows() []domain.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyRows(c.rows)
}

// SetFilter narrows the rows to those matching term: every word of term must
// occur, case-insensitively, in some field of the row. An empty term clears
// the filter. The page index goes back to the first page. No request is made.
func (c *ListController) SetFilter(term string) {
	words := strings.Fields(strings.ToLower(term))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = words
	c.page.PageIndex = 0
}

// Filter returns the active filter words.
func (c *ListController) Filter() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.Join(c.filter, " ")
}

// Filtered returns every local row that passes the filter.
func (c *ListController) Filtered() []domain.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filtered()
}

// Visible returns the filtered rows on the current page.
func (c *ListController) Visible() []domain.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := c.filtered()
	if c.serverPaging {
		return rows
	}
	start, end := c.page.Window(len(rows))
	return rows[start:end]
}

// filtered returns a fresh slice; callers hold mu.
func (c *ListController) filtered() []domain.Row {
	if len(c.filter) == 0 {
		return copyRows(c.rows)
	}
	out := make([]domain.Row, 0, len(c.rows))
	for _, row := range c.rows {
		if matchesAll(row, c.filter) {
			out = append(out, row)
		}
	}
	return out
}

// Status returns the display state and, in the Error state, its cause.
func (c *ListController) Status() (ListStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status, c.err
}

// Loading reports whether a refresh is in flight.
func (c *ListController) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Resource returns the collection the controller manages.
func (c *ListController) Resource() domain.Resource {
	return c.res
}

func (c *ListController) listOptions() ports.ListOptions {
	if !c.serverPaging {
		return ports.ListOptions{}
	}
	return ports.ListOptions{Page: c.page.PageIndex + 1, Limit: c.page.PageSize}
}

func matchesAll(row domain.Row, words []string) bool {
	values := make([]string, 0, len(row))
	for field := range row {
		values = append(values, strings.ToLower(row.String(field)))
	}
	for _, w := range words {
		found := false
		for _, v := range values {
			if strings.Contains(v, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func copyRows(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, len(rows))
	copy(out, rows)
	return out
}
