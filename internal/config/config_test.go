package config_test

import (
	"testing"
	"time"

	"github.com/predixarena/authsvc/internal/config"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()

	if err == nil {
		t.Fatalf("expected an error when JWT_SECRET is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "")
	t.Setenv("AUTH_RATE_LIMIT", "")
	t.Setenv("ADMIN_RATE_LIMIT", "")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env != "dev" {
		t.Fatalf("default env: got %q", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Fatalf("default port: got %d", cfg.Port)
	}
	if cfg.AccessTTL() != time.Hour {
		t.Fatalf("default access TTL: got %v", cfg.AccessTTL())
	}
	if cfg.AuthRateLimit != 10 {
		t.Fatalf("default auth rate limit: got %d", cfg.AuthRateLimit)
	}
	if cfg.AdminRateLimit != 60 || cfg.AdminRateWindow != time.Minute {
		t.Fatalf("default admin rate limit: got %d per %v", cfg.AdminRateLimit, cfg.AdminRateWindow)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "15")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/predixarena")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env != "prod" || cfg.Port != 9090 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.AccessTTL() != 15*time.Minute {
		t.Fatalf("access TTL: got %v", cfg.AccessTTL())
	}
	if cfg.DBURL != "postgres://u:p@db:5432/predixarena" {
		t.Fatalf("DATABASE_URL not honored: %q", cfg.DBURL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("origins not parsed: %#v", cfg.AllowedOrigins)
	}
}
