package ports

import (
	"context"
	"time"

	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/pkg/token"
)

// RegisterInput carries the fields accepted by the registration endpoint.
// Empty Role and Locale fall back to the domain defaults.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     string
	Locale   string
}

// LoginResult is returned after a successful credential check.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *domain.User
}

// PasswordHasher hashes and checks plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Check(plaintext, digest string) bool
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	Issue(subject string) (string, time.Time, error)
	Verify(raw string) (*token.Claims, error)
}

// LoginThrottle tracks failed login attempts per email.
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService defines the account use cases behind the auth endpoints.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	UpdateProfile(ctx context.Context, current *domain.User, patch domain.UserPatch) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// IdentityResolver maps a bearer token to the stored user it names.
type IdentityResolver interface {
	Resolve(ctx context.Context, rawToken string) (*domain.User, error)
}
