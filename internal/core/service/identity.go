package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/internal/core/ports"
	"github.com/foodmarket/platform-api/internal/pkg/metrics"
)

// IdentityResolver turns a verified bearer token into the stored user.
type IdentityResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewIdentityResolver(tokens ports.TokenService, users ports.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// Resolve returns domain.ErrUnauthenticated both for a bad token and for a
// token whose subject no longer exists.
func (r *IdentityResolver) Resolve(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := r.tokens.Verify(rawToken)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenVerificationsTotal.WithLabelValues("user_missing").Inc()
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return user, nil
}
