package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/foodmarket/platform-api/internal/core/service"
)

// RequireRole lets the request through when the current user satisfies any of
// roles. super_admin satisfies every role. Must run after Authenticate.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := CurrentUser(c)

			var firstErr error
			for _, role := range roles {
				err := service.RequireRole(user, role)
				if err == nil {
					return next(c)
				}
				if firstErr == nil {
					firstErr = err
				}
			}
			if firstErr == nil {
				firstErr = service.RequireRole(user, "")
			}
			return firstErr
		}
	}
}
