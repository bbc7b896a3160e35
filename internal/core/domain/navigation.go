package domain

// NavItem is one entry of the navigation menu. Visibility is decided by
// whether the session may perform Action on Subject.
type NavItem struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Action  string `json:"action"`
	Subject string `json:"subject"`
	Icon    string `json:"icon"`
}

// ActionRead is the action every menu entry requires.
const ActionRead = "read"

// Navigation returns the full, unfiltered menu in display order.
func Navigation() []NavItem {
	return []NavItem{
		{Title: "Home", Path: RouteHome, Action: ActionRead, Subject: "home", Icon: "mdi:home-outline"},
		{Title: "Users", Path: "/users", Action: ActionRead, Subject: "user-page", Icon: "mdi:people"},
		{Title: "Products", Path: "/products", Action: ActionRead, Subject: "product-page", Icon: "mdi:invoice-list-outline"},
	}
}
