package service

import (
	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// Navigator resolves where a session lands and which menu entries it sees.
type Navigator struct {
	authz ports.Authorizer
}

func NewNavigator(authz ports.Authorizer) *Navigator {
	return &Navigator{authz: authz}
}

// Landing returns the home route of the session. Sessions without a
// credential always land on the login page.
func (n *Navigator) Landing(s domain.Session) string {
	if !s.Authenticated() {
		return domain.RouteLogin
	}
	return domain.HomeRoute(s.Role)
}

// Menu returns the navigation entries the session is allowed to read, in
// display order.
func (n *Navigator) Menu(s domain.Session) []domain.NavItem {
	all := domain.Navigation()
	visible := make([]domain.NavItem, 0, len(all))
	for _, item := range all {
		if n.authz.Can(s, item.Action, item.Subject) {
			visible = append(visible, item)
		}
	}
	return visible
}

// CanOpen reports whether the session may open the page of a resource.
func (n *Navigator) CanOpen(s domain.Session, res domain.Resource) bool {
	return n.authz.Can(s, domain.ActionRead, res.Subject)
}
