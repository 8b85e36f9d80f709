package security_test

import (
	"strings"
	"testing"

	"github.com/predixarena/authsvc/internal/security"
)

func TestHashAndCheckPassword_RoundTrip(t *testing.T) {
	hash, err := security.HashPassword("secret123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "secret123" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("hash does not look like bcrypt output: %q", hash)
	}

	if err := security.CheckPassword(hash, "secret123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}

	if err := security.CheckPassword(hash, "secret124"); err == nil {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := security.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	h2, err := security.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same input should differ (random salt)")
	}
}

func TestCheckPassword_MalformedHashIsMismatch(t *testing.T) {
	if err := security.CheckPassword("not-a-bcrypt-hash", "whatever"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
