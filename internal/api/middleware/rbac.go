package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/api/metrics"
	"github.com/synchub/attendance/internal/core/domain"
)

// Decider is the authorization policy consulted by RBAC.
type Decider interface {
	Decide(p domain.Principal) error
}

// DeniedTemplate is rendered for browsers that fail the role gate.
const DeniedTemplate = "denied.html"

// RBAC enforces the role policy. Anonymous callers are evaluated as an empty
// principal. A denial is a normal response (403 page or JSON), not an error.
func RBAC(policy Decider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := PrincipalFrom(c)
			if err := policy.Decide(p); err != nil {
				metrics.AccessDeniedTotal.Inc()
				if WantsJSON(c) || c.Echo().Renderer == nil {
					return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrAccessDenied.Error()})
				}
				return c.Render(http.StatusForbidden, DeniedTemplate, map[string]string{
					"Message": "You do not have permission to view this page.",
				})
			}
			return next(c)
		}
	}
}
