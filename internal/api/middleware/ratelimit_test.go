package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(0.001, 2)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// The limiter writes its rejection through c.Error, so the outcome is read
	// from the recorder rather than the returned error.
	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = ip + ":40000"
		rec := httptest.NewRecorder()
		if err := mw(ok)(e.NewContext(req, rec)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("192.0.2.10"); code != http.StatusOK {
			t.Fatalf("request %d within burst: expected 200, got %d", i, code)
		}
	}

	if code := call("192.0.2.10"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}

	if code := call("192.0.2.11"); code != http.StatusOK {
		t.Fatalf("other clients must have their own bucket, got %d", code)
	}
}
