package ports

import (
	"context"
	"time"

	"github.com/foodmarket/platform-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Insert assigns the id and returns the stored user. A duplicate email
	// yields domain.ErrUserExists.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePartial writes only the non-nil fields of patch plus updatedAt.
	UpdatePartial(ctx context.Context, id string, patch domain.UserPatch, updatedAt time.Time) error
}
