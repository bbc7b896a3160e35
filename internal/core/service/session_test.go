package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestSessionFromToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub":      "1",
		"username": "root",
		"role":     "super_admin",
		"exp":      exp.Unix(),
	})

	s, err := SessionFromToken(token)
	if err != nil {
		t.Fatalf("SessionFromToken: %v", err)
	}
	if s.Role != domain.RoleSuperAdmin || s.Subject != "1" || s.Token != token {
		t.Fatalf("session = %+v", s)
	}
	if s.Name() != "root" {
		t.Fatalf("Name() = %q, want root", s.Name())
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Fatalf("expires at %v, want %v", s.ExpiresAt, exp)
	}
}

func TestSessionFromToken_FallsBackToUsername(t *testing.T) {
	s, err := SessionFromToken(signedToken(t, jwt.MapClaims{"username": "root", "role": "customer"}))
	if err != nil {
		t.Fatalf("SessionFromToken: %v", err)
	}
	if s.Subject != "root" || s.Role != domain.RoleCustomer || !s.ExpiresAt.IsZero() {
		t.Fatalf("session = %+v", s)
	}
}

func TestSessionFromToken_Errors(t *testing.T) {
	if _, err := SessionFromToken(""); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
	if _, err := SessionFromToken("not-a-jwt"); err == nil {
		t.Fatal("expected parse error")
	}
}
