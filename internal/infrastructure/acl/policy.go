// Package acl holds the role-to-permission table the dashboard uses to decide
// which pages a session may open.
package acl

import (
	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// Wildcards matching any action or subject.
const (
	ActionManage = "manage"
	SubjectAll   = "all"
)

// Grant allows Action on Subject.
type Grant struct {
	Action  string
	Subject string
}

func (g Grant) allows(action, subject string) bool {
	return (g.Action == ActionManage || g.Action == action) &&
		(g.Subject == SubjectAll || g.Subject == subject)
}

// StaticPolicy is a fixed role table. Roles it does not list are granted
// nothing.
type StaticPolicy struct {
	grants map[domain.Role][]Grant
}

var _ ports.Authorizer = (*StaticPolicy)(nil)

// NewStaticPolicy copies grants into a policy.
func NewStaticPolicy(grants map[domain.Role][]Grant) *StaticPolicy {
	p := &StaticPolicy{grants: make(map[domain.Role][]Grant, len(grants))}
	for role, gs := range grants {
		p.grants[role] = append([]Grant(nil), gs...)
	}
	return p
}

// DefaultPolicy is the dashboard's built-in table.
func DefaultPolicy() *StaticPolicy {
	return NewStaticPolicy(map[domain.Role][]Grant{
		domain.RoleSuperAdmin: {
			{Action: ActionManage, Subject: SubjectAll},
		},
		domain.RoleAdmin: {
			{Action: domain.ActionRead, Subject: "home"},
			{Action: domain.ActionRead, Subject: domain.UsersResource.Subject},
			{Action: domain.ActionRead, Subject: domain.ProductsResource.Subject},
		},
		domain.RoleCustomer: {
			{Action: domain.ActionRead, Subject: "home"},
		},
	})
}

// Can reports whether the session's role grants action on subject.
// Unauthenticated sessions are granted nothing.
func (p *StaticPolicy) Can(s domain.Session, action, subject string) bool {
	if !s.Authenticated() {
		return false
	}
	for _, g := range p.grants[s.Role] {
		if g.allows(action, subject) {
			return true
		}
	}
	return false
}
