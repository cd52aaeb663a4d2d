package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/internal/core/ports"
	"github.com/foodmarket/platform-api/internal/pkg/metrics"
)

const tokenTypeBearer = "bearer"

// placeholderPassword is hashed once and compared against when a login names
// an unknown email, so both failure paths pay for one bcrypt comparison.
const placeholderPassword = "placeholder-password-for-unknown-accounts"

// AuthService implements registration, login and self-service profile updates.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
	now      func() time.Time

	placeholderOnce   sync.Once
	placeholderDigest string
}

// NewAuthService wires the account use cases. throttle and audit may be nil,
// in which case login throttling and the audit trail are disabled.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new account and returns the stored user.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleCustomer
	}
	if in.Locale == "" {
		in.Locale = domain.LocaleEN
	}
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now()
	created, err := s.users.Insert(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		Locale:       in.Locale,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: insert user: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(created.Role).Inc()
	s.record(domain.EventUserRegistered, created.ID, created.Email)
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return created, nil
}

// Login checks the credentials and issues an access token. Unknown emails
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.isThrottled(ctx, email) {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		s.hasher.Check(password, s.placeholder())
		return nil, s.loginFailed(ctx, email)
	case err != nil:
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, s.loginFailed(ctx, email)
	}

	accessToken, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.EventLoginSucceeded, user.ID, user.Email)

	return &ports.LoginResult{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// UpdateProfile applies patch to the current user and returns the re-read
// record. An empty patch returns current without touching the store.
func (s *AuthService) UpdateProfile(ctx context.Context, current *domain.User, patch domain.UserPatch) (*domain.User, error) {
	if current == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	if err := s.users.UpdatePartial(ctx, current.ID, patch, s.now()); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	updated, err := s.users.FindByID(ctx, current.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("update profile: reload user: %w", err)
	}

	s.record(domain.EventProfileUpdated, updated.ID, updated.Email)
	return updated, nil
}

// GetUser looks up an account by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) isThrottled(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		return false
	}
	return blocked
}

func (s *AuthService) loginFailed(ctx context.Context, email string) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	s.record(domain.EventLoginFailed, "", email)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) placeholder() string {
	s.placeholderOnce.Do(func() {
		digest, err := s.hasher.Hash(placeholderPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to hash placeholder password")
			return
		}
		s.placeholderDigest = digest
	})
	return s.placeholderDigest
}

func (s *AuthService) record(eventType domain.AuthEventType, subject, email string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuthEventInput{
		Type:       eventType,
		Subject:    subject,
		Email:      email,
		OccurredAt: s.now(),
	})
}

func validateRegistration(in ports.RegisterInput) error {
	verr := &domain.ValidationError{}
	if !strings.Contains(in.Email, "@") {
		verr.Add("email", "must be a valid email")
	}
	if utf8.RuneCountInString(in.Password) < domain.MinPasswordLength {
		verr.Add("password", fmt.Sprintf("must be at least %d characters", domain.MinPasswordLength))
	} else if len(in.Password) > domain.MaxPasswordBytes {
		verr.Add("password", fmt.Sprintf("must be at most %d bytes", domain.MaxPasswordBytes))
	}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "is required")
	} else if utf8.RuneCountInString(in.Name) > domain.MaxNameLength {
		verr.Add("name", fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}
	if !domain.ValidRole(in.Role) {
		verr.Add("role", "must be one of: customer market_admin super_admin")
	}
	if !domain.ValidLocale(in.Locale) {
		verr.Add("locale", "must be one of: en ua")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func validatePatch(p domain.UserPatch) error {
	verr := &domain.ValidationError{}
	if p.Name != nil && utf8.RuneCountInString(*p.Name) > domain.MaxNameLength {
		verr.Add("name", fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}
	if p.Locale != nil && !domain.ValidLocale(*p.Locale) {
		verr.Add("locale", "must be one of: en ua")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
