package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// RequireRoles rejects requests whose authenticated user is not in the
// allowed set. A super admin always passes. Must run after Auth.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := Actor(c)
			if actor == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if actor.Role == domain.RoleSuperAdmin {
				return next(c)
			}
			if _, ok := allowed[actor.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
