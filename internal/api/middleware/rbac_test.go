package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/foodmarket/platform-api/internal/core/domain"
)

func runRequireRole(t *testing.T, user *domain.User, roles ...string) (bool, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if user != nil {
		c.Set(ContextKeyUser, user)
	}

	called := false
	err := RequireRole(roles...)(func(echo.Context) error {
		called = true
		return nil
	})(c)
	return called, err
}

func TestRequireRole_Matrix(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		require []string
		wantErr error
	}{
		{"customer on customer route", domain.RoleCustomer, []string{domain.RoleCustomer}, nil},
		{"customer on admin route", domain.RoleCustomer, []string{domain.RoleMarketAdmin}, domain.ErrForbidden},
		{"market admin on admin route", domain.RoleMarketAdmin, []string{domain.RoleMarketAdmin}, nil},
		{"market admin on super route", domain.RoleMarketAdmin, []string{domain.RoleSuperAdmin}, domain.ErrForbidden},
		{"super admin bypass", domain.RoleSuperAdmin, []string{domain.RoleMarketAdmin}, nil},
		{"any of several", domain.RoleCustomer, []string{domain.RoleMarketAdmin, domain.RoleCustomer}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called, err := runRequireRole(t, &domain.User{ID: "u1", Role: tt.role}, tt.require...)
			if tt.wantErr == nil {
				if err != nil || !called {
					t.Fatalf("expected access, got called=%v err=%v", called, err)
				}
				return
			}
			if called {
				t.Fatal("handler must not run when access is denied")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRequireRole_WithoutAuthenticatedUser(t *testing.T) {
	called, err := runRequireRole(t, nil, domain.RoleCustomer)
	if called {
		t.Fatal("handler must not run")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
