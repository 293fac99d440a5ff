package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// WantsJSON reports whether the client asked for JSON. Everything else gets
// the server-rendered page.
func WantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
