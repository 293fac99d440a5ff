package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/core/domain"
)

const (
	// TokenCookie carries the JWT for server-rendered pages.
	TokenCookie = "synchub_token"

	principalKey = "principal"
)

// Auth validates the JWT and injects the caller's principal into context.
// Requests without a valid token are rejected with 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := tokenFromRequest(c)
			if err != nil {
				return err
			}
			p, err := parsePrincipal(raw, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// OptionalAuth injects a principal when a valid token is present and lets the
// request through otherwise, so the role gate can render its denial page.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, err := tokenFromRequest(c); err == nil {
				if p, err := parsePrincipal(raw, jwtSecret); err == nil {
					c.Set(principalKey, p)
				}
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal set by Auth or OptionalAuth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// tokenFromRequest reads the bearer token, falling back to the session cookie.
func tokenFromRequest(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
}

func parsePrincipal(raw, jwtSecret string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Principal{}, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims.GetSubject()
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return domain.Principal{}, jwt.ErrTokenInvalidSubject
	}

	p := domain.Principal{UserID: uint(id)}
	p.StudentNumber, _ = claims["student_number"].(string)
	p.Superuser, _ = claims["superuser"].(bool)
	if groups, ok := claims["groups"].([]interface{}); ok {
		for _, g := range groups {
			if s, ok := g.(string); ok {
				p.Groups = append(p.Groups, s)
			}
		}
	}
	return p, nil
}
