package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/api/metrics"
	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// ActorKey is the echo context key under which Auth stores the
// authenticated user.
const ActorKey = "actor"

// Auth resolves the bearer token through the access gate and injects the
// authenticated user into context. Credential failures are a uniform 401;
// a failing user store surfaces through the error handler instead.
func Auth(gate *access.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := gate.RequireAuthenticated(c.Request().Context(), parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				if errors.Is(err, domain.ErrUnauthorized) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

// Actor returns the authenticated user stored by Auth, or nil.
func Actor(c echo.Context) *domain.User {
	actor, _ := c.Get(ActorKey).(*domain.User)
	return actor
}
