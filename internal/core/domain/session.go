package domain

import "time"

// Session is the authenticated context every resource call runs under.
// It is created at login, read by the client and the router, and destroyed at
// logout. Clients never mutate it.
type Session struct {
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	Subject   string    `json:"subject,omitempty"`
	Username  string    `json:"username,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Authenticated reports whether the session carries a credential.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Expired reports whether the credential is past its expiry at now. Sessions
// without an expiry never expire client-side.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Name is the account name shown to the operator.
func (s Session) Name() string {
	if s.Username != "" {
		return s.Username
	}
	return s.Subject
}
