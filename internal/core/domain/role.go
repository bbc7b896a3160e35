package domain

// Role is the authorization level attached to a session.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleCustomer   Role = "customer"
)

// Landing routes handed out by HomeRoute.
const (
	RouteHome  = "/home"
	RouteLogin = "/login"
)

// Known reports whether r is one of the recognised roles.
func (r Role) Known() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// HomeRoute maps a role to the route a freshly authenticated session lands on.
// Any role outside the recognised set, including the empty role, is sent back
// to the login page.
func HomeRoute(r Role) string {
	if r.Known() {
		return RouteHome
	}
	return RouteLogin
}
