package acl

import (
	"testing"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		role    domain.Role
		subject string
		want    bool
	}{
		{domain.RoleSuperAdmin, "home", true},
		{domain.RoleSuperAdmin, "user-page", true},
		{domain.RoleSuperAdmin, "anything", true},
		{domain.RoleAdmin, "home", true},
		{domain.RoleAdmin, "product-page", true},
		{domain.RoleAdmin, "anything", false},
		{domain.RoleCustomer, "home", true},
		{domain.RoleCustomer, "user-page", false},
		{domain.Role("guest"), "home", false},
	}

	for _, tt := range tests {
		s := domain.Session{Role: tt.role, Token: "t"}
		if got := p.Can(s, domain.ActionRead, tt.subject); got != tt.want {
			t.Errorf("Can(%s, read, %s) = %v, want %v", tt.role, tt.subject, got, tt.want)
		}
	}
}

func TestPolicy_AnonymousSessionGetsNothing(t *testing.T) {
	p := DefaultPolicy()
	if p.Can(domain.Session{Role: domain.RoleSuperAdmin}, domain.ActionRead, "home") {
		t.Fatal("session without a token must not be granted anything")
	}
}

func TestPolicy_ActionMustMatch(t *testing.T) {
	p := NewStaticPolicy(map[domain.Role][]Grant{
		domain.RoleAdmin: {{Action: domain.ActionRead, Subject: "user-page"}},
	})
	s := domain.Session{Role: domain.RoleAdmin, Token: "t"}

	if p.Can(s, "delete", "user-page") {
		t.Fatal("read grant must not allow delete")
	}
	if !p.Can(s, domain.ActionRead, "user-page") {
		t.Fatal("read grant must allow read")
	}
}
