package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/predixarena/authsvc/internal/auth"
	"github.com/predixarena/authsvc/internal/domain/user"
	"github.com/predixarena/authsvc/internal/http/middlewares"
	"github.com/predixarena/authsvc/internal/repo/postgres"
)

func TestRateLimiter_FixedWindow(t *testing.T) {
	rl := middlewares.NewRateLimiter(2, time.Minute)

	r := gin.New()
	r.POST("/login", rl.Middleware(func(*gin.Context) string { return "tester" }), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if got := do(); got != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", got)
	}
	if got := do(); got != http.StatusOK {
		t.Fatalf("second request: got %d, want 200", got)
	}
	if got := do(); got != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d, want 429", got)
	}
}

func TestRateLimiter_KeyByUserOrIP(t *testing.T) {
	users := map[string]user.User{
		"tok-alice": {ID: "u-1", Email: "alice@example.com", Role: user.RoleAdmin, IsSuperUser: true},
		"tok-bob":   {ID: "u-2", Email: "bob@example.com", Role: user.RoleAdmin, IsSuperUser: true},
	}

	m := middlewares.NewAuthMiddleware(
		&fakeVerifier{verifyFn: func(token string) (*auth.Claims, error) {
			u, ok := users[token]
			if !ok {
				return nil, auth.ErrInvalidToken
			}
			return claimsFor(u.Email, u.ID), nil
		}},
		&fakeResolver{getFn: func(_ context.Context, email string) (user.User, error) {
			for _, u := range users {
				if u.Email == email {
					return u, nil
				}
			}
			return user.User{}, postgres.ErrUserNotFound
		}},
	)

	rl := middlewares.NewRateLimiter(1, time.Minute)

	r := gin.New()
	r.GET("/admin", m.RequireAuth(), rl.Middleware(middlewares.KeyByUserOrIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if got := do("tok-alice"); got != http.StatusOK {
		t.Fatalf("alice first request: got %d, want 200", got)
	}
	if got := do("tok-alice"); got != http.StatusTooManyRequests {
		t.Fatalf("alice second request: got %d, want 429", got)
	}

	// a different caller has an independent window
	if got := do("tok-bob"); got != http.StatusOK {
		t.Fatalf("bob first request: got %d, want 200", got)
	}
}

func TestKeyByUserOrIP_FallsBackToIPWithoutCaller(t *testing.T) {
	var key string

	r := gin.New()
	r.GET("/limit-key", func(c *gin.Context) {
		key = middlewares.KeyByUserOrIP(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/limit-key", nil)
	req.RemoteAddr = "203.0.113.9:4242"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if key != "203.0.113.9" {
		t.Fatalf("got key %q, want the client IP", key)
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := middlewares.NewRateLimiter(1, 10*time.Millisecond)

	r := gin.New()
	r.POST("/login", rl.Middleware(func(*gin.Context) string { return "tester" }), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if got := do(); got != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", got)
	}
	if got := do(); got != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", got)
	}

	time.Sleep(15 * time.Millisecond)

	if got := do(); got != http.StatusOK {
		t.Fatalf("request after window: got %d, want 200", got)
	}
}
