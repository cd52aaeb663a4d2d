package config

import (
	"context"
	"testing"
	"time"
)

const validSecret = "0123456789abcdef0123"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.JWTAlgorithm != "HS256" {
		t.Errorf("JWTAlgorithm = %q, want HS256", cfg.Auth.JWTAlgorithm)
	}
	if cfg.AccessTokenTTL() != 30*time.Minute {
		t.Errorf("AccessTokenTTL = %v, want 30m", cfg.AccessTokenTTL())
	}
	if cfg.Auth.LoginLockoutWindow != 15*time.Minute {
		t.Errorf("LoginLockoutWindow = %v, want 15m", cfg.Auth.LoginLockoutWindow)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "food_market" {
		t.Errorf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	want := []string{"http://localhost:3000", "http://localhost:5173"}
	if len(cfg.HTTP.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORSAllowedOrigins = %v, want %v", cfg.HTTP.CORSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.HTTP.CORSAllowedOrigins[i] != want[i] {
			t.Errorf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.HTTP.CORSAllowedOrigins[i], want[i])
		}
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "90")
	t.Setenv("ENV", "production")
	t.Setenv("AUDIT_WORKERS", "2")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTAlgorithm != "HS512" {
		t.Errorf("JWTAlgorithm = %q", cfg.Auth.JWTAlgorithm)
	}
	if cfg.AccessTokenTTL() != 90*time.Minute {
		t.Errorf("AccessTokenTTL = %v", cfg.AccessTokenTTL())
	}
	if cfg.IsDevelopment() {
		t.Error("production must not be treated as development")
	}
	if cfg.Audit.Workers != 2 {
		t.Errorf("Audit.Workers = %d", cfg.Audit.Workers)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"empty secret", map[string]string{"JWT_SECRET": ""}},
		{"short secret", map[string]string{"JWT_SECRET": "short"}},
		{"asymmetric algorithm", map[string]string{"JWT_SECRET": validSecret, "JWT_ALGORITHM": "RS256"}},
		{"zero ttl", map[string]string{"JWT_SECRET": validSecret, "ACCESS_TOKEN_EXPIRE_MINUTES": "0"}},
		{"unknown env", map[string]string{"JWT_SECRET": validSecret, "ENV": "qa"}},
		{"malformed window", map[string]string{"JWT_SECRET": validSecret, "LOGIN_LOCKOUT_WINDOW": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(context.Background()); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
