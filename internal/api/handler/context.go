package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/foodmarket/platform-api/internal/api/middleware"
	"github.com/foodmarket/platform-api/internal/core/domain"
)

// currentUser returns the identity resolved by the Authenticate middleware.
// Reaching a protected handler without one means the route was wired without
// authentication, which is reported the same way as a bad token.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
