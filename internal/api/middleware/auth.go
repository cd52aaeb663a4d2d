package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/internal/core/ports"
)

// ContextKeyUser is the echo context key holding the authenticated *domain.User.
const ContextKeyUser = "user"

// Authenticate resolves the bearer token into the current user.
// A missing or non-bearer Authorization header yields ErrNotAuthenticated;
// a token that does not verify or names no user yields ErrUnauthenticated.
func Authenticate(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrNotAuthenticated
			}

			user, err := resolver.Resolve(c.Request().Context(), raw)
			if err != nil {
				return err
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
