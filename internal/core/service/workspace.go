package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// Screen bundles the controllers of one resource page: the list, its add and
// edit forms, and the delete prompt. Every dialog re-syncs the list when it
// closes.
type Screen struct {
	Resource domain.Resource
	List     *ListController
	Add      *FormController
	Edit     *FormController
	Delete   *DeleteConfirmation
}

// NewScreen wires the controllers of one resource page.
func NewScreen(
	client ports.ResourceClient,
	res domain.Resource,
	session domain.Session,
	notifier ports.Notifier,
	log zerolog.Logger,
	opts ...ListOption,
) *Screen {
	list := NewListController(client, res, session, log, opts...)
	return &Screen{
		Resource: res,
		List:     list,
		Add:      NewFormController(client, res, session, notifier, list.Resync, log),
		Edit:     NewFormController(client, res, session, notifier, list.Resync, log),
		Delete:   NewDeleteConfirmation(client, res, session, notifier, list.Resync, log),
	}
}

// Dashboard is the set of resource pages a session may open.
type Dashboard struct {
	session domain.Session
	nav     *Navigator
	screens []*Screen
}

// NewDashboard builds one screen per resource the session may read.
func NewDashboard(
	client ports.ResourceClient,
	session domain.Session,
	notifier ports.Notifier,
	authz ports.Authorizer,
	log zerolog.Logger,
	opts ...ListOption,
) *Dashboard {
	nav := NewNavigator(authz)
	d := &Dashboard{session: session, nav: nav}
	for _, res := range domain.Resources() {
		if !nav.CanOpen(session, res) {
			continue
		}
		d.screens = append(d.screens, NewScreen(client, res, session, notifier, log, opts...))
	}
	return d
}

// Landing is the route the session starts on.
func (d *Dashboard) Landing() string {
	return d.nav.Landing(d.session)
}

// Menu is the navigation visible to the session.
func (d *Dashboard) Menu() []domain.NavItem {
	return d.nav.Menu(d.session)
}

// Screens returns the resource pages in menu order.
func (d *Dashboard) Screens() []*Screen {
	return d.screens
}

// Screen finds the page of a resource by name.
func (d *Dashboard) Screen(name string) (*Screen, bool) {
	for _, s := range d.screens {
		if s.Resource.Name == name {
			return s, true
		}
	}
	return nil, false
}

// RefreshAll performs the initial refresh of every screen in parallel. A
// failing list does not stop the others; the first error is returned.
func (d *Dashboard) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	for _, s := range d.screens {
		g.Go(func() error {
			_, err := s.List.Refresh(ctx)
			return err
		})
	}
	return g.Wait()
}
