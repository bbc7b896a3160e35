package service

import (
	"testing"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

func TestNavigator_LandingIsTotal(t *testing.T) {
	nav := NewNavigator(stubAuthorizer{})

	tests := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleSuperAdmin, domain.RouteHome},
		{domain.RoleAdmin, domain.RouteHome},
		{domain.RoleCustomer, domain.RouteHome},
		{"", domain.RouteLogin},
		{"guest", domain.RouteLogin},
		{"SUPER_ADMIN", domain.RouteLogin},
	}
	for _, tt := range tests {
		if got := nav.Landing(domain.Session{Role: tt.role, Token: "t"}); got != tt.want {
			t.Errorf("Landing(%q) = %s, want %s", tt.role, got, tt.want)
		}
	}

	if got := nav.Landing(domain.Session{Role: domain.RoleSuperAdmin}); got != domain.RouteLogin {
		t.Fatalf("session without token landed on %s", got)
	}
}

func TestNavigator_MenuFollowsGrants(t *testing.T) {
	nav := NewNavigator(stubAuthorizer{
		domain.RoleSuperAdmin: {"home", "user-page", "product-page"},
		domain.RoleCustomer:   {"home"},
	})

	full := nav.Menu(superAdmin)
	if len(full) != 3 || full[0].Title != "Home" || full[1].Path != "/users" || full[2].Icon != "mdi:invoice-list-outline" {
		t.Fatalf("super admin menu = %+v", full)
	}

	customer := domain.Session{Role: domain.RoleCustomer, Token: "t"}
	menu := nav.Menu(customer)
	if len(menu) != 1 || menu[0].Subject != "home" {
		t.Fatalf("customer menu = %+v, want only home", menu)
	}
	if nav.CanOpen(customer, domain.UsersResource) {
		t.Fatal("customer must not open the users page")
	}
	if !nav.CanOpen(superAdmin, domain.ProductsResource) {
		t.Fatal("super admin must open the products page")
	}
}
