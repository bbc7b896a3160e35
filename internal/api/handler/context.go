package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-dashboard/internal/api/middleware"
)

// actor names the authenticated caller for logs.
func actor(c echo.Context) (string, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p.Name(), nil
}

// pageParams reads the optional page and limit query parameters.
func pageParams(c echo.Context) (page, limit int, err error) {
	if v := c.QueryParam("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
	}
	return page, limit, nil
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}
