package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/api/middleware"
	"github.com/synchub/attendance/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// A missing or anonymous principal means the middleware did not run.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.UserID == 0 {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// respond renders tmpl for browsers and v as JSON for API clients.
func respond(c echo.Context, code int, tmpl string, page, v interface{}) error {
	if middleware.WantsJSON(c) || c.Echo().Renderer == nil {
		return c.JSON(code, v)
	}
	return c.Render(code, tmpl, page)
}

// errorResponse documents the envelope written by the central error handler.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
