package ports

import "github.com/99minutos/admin-dashboard/internal/core/domain"

// Authorizer decides whether a session may perform action on subject.
type Authorizer interface {
	Can(s domain.Session, action, subject string) bool
}
