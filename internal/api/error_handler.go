package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/api/handler"
	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "...", "errors": {...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorBody) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorBody{Message: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, validationBody(ve)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, handler.ErrorBody{Message: "user not found"}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, handler.ErrorBody{Message: "product not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusUnprocessableEntity, handler.ErrorBody{
			Message: "The username has already been taken.",
			Errors:  map[string][]string{"username": {"The username has already been taken."}},
		}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, handler.ErrorBody{Message: "access forbidden"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, handler.ErrorBody{Message: "invalid credentials"}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, handler.ErrorBody{Message: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorBody{Message: "internal server error"}
}

func validationBody(ve *domain.ValidationError) handler.ErrorBody {
	body := handler.ErrorBody{Message: ve.Message}
	if len(ve.Fields) > 0 {
		body.Errors = make(map[string][]string, len(ve.Fields))
		names := make([]string, 0, len(ve.Fields))
		for name, msg := range ve.Fields {
			body.Errors[name] = []string{msg}
			names = append(names, name)
		}
		if body.Message == "" {
			sort.Strings(names)
			body.Message = ve.Fields[names[0]]
		}
	}
	if body.Message == "" {
		body.Message = domain.ErrValidation.Error()
	}
	return body
}
