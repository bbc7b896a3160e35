package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

const principalKey = "principal"

// Principal is the authenticated caller of a request, read from the bearer
// token's claims.
type Principal struct {
	ID       string
	Username string
	Role     domain.Role
}

// Name identifies the caller in logs.
func (p Principal) Name() string {
	if p.Username != "" {
		return p.Username
	}
	return p.ID
}

// PrincipalFrom returns the caller stored by Auth.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

var errBadHeader = errors.New("invalid authorization header")

// Auth validates the HS256 bearer token and stores its Principal on the
// context. Expired tokens are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := []byte(jwtSecret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request())
			if err != nil {
				return unauthorized(c, err.Error())
			}

			claims := jwt.MapClaims{}
			tkn, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return key, nil
			})
			if err != nil || !tkn.Valid {
				return unauthorized(c, "invalid token")
			}

			p := Principal{}
			p.ID, _ = claims.GetSubject()
			p.Username, _ = claims["username"].(string)
			if role, ok := claims["role"].(string); ok {
				p.Role = domain.Role(role)
			}
			c.Set(principalKey, p)

			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", errBadHeader
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="super_admin"`)
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
