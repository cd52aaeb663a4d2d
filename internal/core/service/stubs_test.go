package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/internal/core/ports"
	"github.com/foodmarket/platform-api/pkg/password"
	"github.com/foodmarket/platform-api/pkg/token"
)

// ---------------------------------------------------------------------------
// User repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	nextID  int
	findErr error

	inserts int
	updates int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	r.byID[stored.ID] = stored
	r.inserts++
	return cloneUser(stored), nil
}

func (r *stubUserRepo) UpdatePartial(_ context.Context, id string, patch domain.UserPatch, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Locale != nil {
		u.Locale = *patch.Locale
	}
	u.UpdatedAt = updatedAt
	r.updates++
	return nil
}

// ---------------------------------------------------------------------------
// Login throttle and audit recorder
// ---------------------------------------------------------------------------

type stubThrottle struct {
	blocked    bool
	blockedErr error
	failures   []string
	resets     []string
}

func (t *stubThrottle) Blocked(_ context.Context, _ string) (bool, error) {
	return t.blocked, t.blockedErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures = append(t.failures, email)
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.resets = append(t.resets, email)
	return nil
}

type stubAudit struct {
	events []ports.AuthEventInput
}

func (a *stubAudit) Enqueue(e ports.AuthEventInput) bool {
	a.events = append(a.events, e)
	return true
}

func (a *stubAudit) types() []domain.AuthEventType {
	out := make([]domain.AuthEventType, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Type)
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

const testSecret = "service-test-secret-0123456789"

type fixture struct {
	repo     *stubUserRepo
	throttle *stubThrottle
	audit    *stubAudit
	tokens   *token.Manager
	svc      *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := token.NewManager(testSecret, "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	f := &fixture{
		repo:     newStubUserRepo(),
		throttle: &stubThrottle{},
		audit:    &stubAudit{},
		tokens:   tokens,
	}
	f.svc = NewAuthService(f.repo, password.NewHasher(bcrypt.MinCost), tokens, f.throttle, f.audit, zerolog.Nop())
	return f
}

func (f *fixture) register(t *testing.T, email, pass, role string) *domain.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Email:    email,
		Name:     "Test User",
		Password: pass,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}
