package user_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/predixarena/authsvc/internal/domain/user"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    user.Role
		wantErr bool
	}{
		{"ADMIN", user.RoleAdmin, false},
		{"OPS", user.RoleOps, false},
		{"GENERAL", user.RoleGeneral, false},
		{"general", "", true},
		{"", "", true},
		{"ROOT", "", true},
	}

	for _, tt := range tests {
		got, err := user.ParseRole(tt.in)

		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseRole(%q): expected error", tt.in)
			}
			continue
		}

		if err != nil {
			t.Fatalf("ParseRole(%q): %v", tt.in, err)
		}

		if got != tt.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPublicView_NeverContainsHash(t *testing.T) {
	first := "Alice"
	u := user.User{
		ID:           "u-1",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$somethingsecret",
		FirstName:    &first,
		Role:         user.RoleGeneral,
		CreatedAt:    time.Now().UTC(),
	}

	raw, err := json.Marshal(u.PublicView())

	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := strings.ToLower(string(raw))

	for _, needle := range []string{"passwordhash", "password_hash", "somethingsecret"} {
		if strings.Contains(body, needle) {
			t.Fatalf("public view leaked %q: %s", needle, raw)
		}
	}

	if !strings.Contains(string(raw), `"email":"alice@example.com"`) {
		t.Fatalf("public view missing email: %s", raw)
	}
}

func TestUserJSON_HashOmitted(t *testing.T) {
	u := user.User{
		ID:           "u-1",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}

	raw, err := json.Marshal(u)

	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(raw), "hash") {
		t.Fatalf("User marshalled the password hash: %s", raw)
	}
}

func TestLoginViewOf(t *testing.T) {
	last := "Liddell"
	u := user.User{
		ID:          "u-1",
		Email:       "alice@example.com",
		Role:        user.RoleOps,
		IsSuperUser: true,
		LastName:    &last,
	}

	v := u.LoginViewOf()

	if v.ID != "u-1" || v.Email != "alice@example.com" || v.Role != user.RoleOps || !v.IsSuperUser {
		t.Fatalf("unexpected login view: %+v", v)
	}

	if v.LastName == nil || *v.LastName != "Liddell" {
		t.Fatalf("lastName not carried over: %+v", v)
	}
}
