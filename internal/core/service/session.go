package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// SessionFromToken builds a session from a bearer token issued by the API.
// The signature is not checked here: the client cannot verify it and the
// server rejects forged tokens on every call. Only the claims the dashboard
// needs are read.
func SessionFromToken(token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrNoCredential
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Session{}, fmt.Errorf("parse token: %w", err)
	}

	s := domain.Session{Token: token}
	if role, ok := claims["role"].(string); ok {
		s.Role = domain.Role(role)
	}
	username, _ := claims["username"].(string)
	s.Username = username
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		s.Subject = sub
	} else {
		s.Subject = username
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time.UTC()
	}
	return s, nil
}
