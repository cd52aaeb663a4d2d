package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/foodmarket/platform-api/internal/core/domain"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, raw string) (*domain.User, error)
}

func (s *stubResolver) Resolve(ctx context.Context, raw string) (*domain.User, error) {
	return s.resolveFn(ctx, raw)
}

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	resolver := &stubResolver{resolveFn: func(context.Context, string) (*domain.User, error) {
		t.Fatal("resolver must not be called")
		return nil, nil
	}}
	mw := Authenticate(resolver)

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer", "Bearer   ", "token-without-scheme"} {
		t.Run(header, func(t *testing.T) {
			c, _ := newAuthContext(header)
			err := mw(func(echo.Context) error {
				t.Fatal("next must not be called")
				return nil
			})(c)
			if !errors.Is(err, domain.ErrNotAuthenticated) {
				t.Fatalf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw := Authenticate(&stubResolver{resolveFn: func(_ context.Context, raw string) (*domain.User, error) {
		if raw != "expired-token" {
			t.Fatalf("unexpected token %q", raw)
		}
		return nil, domain.ErrUnauthenticated
	}})

	c, _ := newAuthContext("Bearer expired-token")
	err := mw(func(echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, ok := CurrentUser(c); ok {
		t.Fatal("no user should be stored on failure")
	}
}

func TestAuthenticate_StoresUser(t *testing.T) {
	want := &domain.User{ID: "u1", Role: domain.RoleCustomer}
	mw := Authenticate(&stubResolver{resolveFn: func(context.Context, string) (*domain.User, error) {
		return want, nil
	}})

	c, rec := newAuthContext("bearer good-token")
	err := mw(func(c echo.Context) error {
		got, ok := CurrentUser(c)
		if !ok || got != want {
			t.Fatalf("expected stored user, got %+v", got)
		}
		return c.NoContent(http.StatusNoContent)
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
