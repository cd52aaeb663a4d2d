package service

import "github.com/foodmarket/platform-api/internal/core/domain"

// RequireRole grants access when user holds role exactly. super_admin is
// granted every role.
func RequireRole(user *domain.User, role string) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if user.Role == role || user.Role == domain.RoleSuperAdmin {
		return nil
	}
	return domain.ErrForbidden
}
