package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/predixarena/authsvc/internal/auth"
	"github.com/predixarena/authsvc/internal/domain/user"
)

func tokenFor(t *testing.T, u user.User) string {
	t.Helper()

	token, err := auth.NewManager("test-secret-key", time.Hour).Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	return token
}

func TestProfile(t *testing.T) {
	store := newFakeUsersRepo()
	alice := store.add(t, "alice@example.com", "secret123", false)
	bob := store.add(t, "bob@example.com", "secret123", false)

	r := newTestRouter(store)
	token := tokenFor(t, alice)

	t.Run("any authenticated caller can fetch any profile", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/users/profile/"+bob.ID, "", token)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
		}

		var got user.Public
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if got.ID != bob.ID || got.Email != bob.Email {
			t.Fatalf("wrong profile: %+v", got)
		}

		if strings.Contains(strings.ToLower(w.Body.String()), "passwordhash") {
			t.Fatalf("profile leaked the hash: %s", w.Body.String())
		}
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/users/profile/no-such-user", "", token)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d, want 404, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("no token is 401", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/users/profile/"+bob.ID, "", "")

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("got status %d, want 401, body=%s", w.Code, w.Body.String())
		}
	})
}

func TestAdminUsersList(t *testing.T) {
	store := newFakeUsersRepo()
	root := store.add(t, "root@example.com", "secret123", true)
	store.add(t, "alice@example.com", "secret123", false)
	store.add(t, "bob@example.com", "secret123", false)

	r := newTestRouter(store)

	w := doJSON(r, http.MethodGet, "/api/admin/users", "", tokenFor(t, root))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Users []user.Public `json:"users"`
		Count int           `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Count != 2 || len(resp.Users) != 2 {
		t.Fatalf("expected 2 users (caller excluded), got %d", resp.Count)
	}

	for _, u := range resp.Users {
		if u.ID == root.ID {
			t.Fatalf("list must exclude the caller")
		}
	}
}

func TestAdminUsersList_ForbiddenForGeneral(t *testing.T) {
	store := newFakeUsersRepo()
	alice := store.add(t, "alice@example.com", "secret123", false)

	r := newTestRouter(store)

	w := doJSON(r, http.MethodGet, "/api/admin/users", "", tokenFor(t, alice))

	if w.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want 403, body=%s", w.Code, w.Body.String())
	}
}

func TestAdminUsersUpdate(t *testing.T) {
	tests := []struct {
		name        string
		target      string // email of seeded target, empty = nonexistent id
		body        string
		wantStatus  int
		wantRole    user.Role
		wantSuper   bool
		wantDeleted bool
	}{
		{
			name:       "promote_admin",
			target:     "alice@example.com",
			body:       `{"action":"promote_admin"}`,
			wantStatus: http.StatusOK,
			wantRole:   user.RoleAdmin,
			wantSuper:  true,
		},
		{
			name:       "promote_ops",
			target:     "alice@example.com",
			body:       `{"action":"promote_ops"}`,
			wantStatus: http.StatusOK,
			wantRole:   user.RoleOps,
			wantSuper:  false,
		},
		{
			name:        "delete",
			target:      "alice@example.com",
			body:        `{"action":"delete"}`,
			wantStatus:  http.StatusOK,
			wantDeleted: true,
		},
		{
			name:       "unknown action",
			target:     "alice@example.com",
			body:       `{"action":"make_coffee"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing user",
			target:     "",
			body:       `{"action":"promote_ops"}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUsersRepo()
			root := store.add(t, "root@example.com", "secret123", true)

			targetID := "no-such-user"
			if tt.target != "" {
				targetID = store.add(t, tt.target, "secret123", false).ID
			}

			r := newTestRouter(store)

			w := doJSON(r, http.MethodPut, "/api/admin/users/"+targetID, tt.body, tokenFor(t, root))

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			if tt.wantDeleted {
				if _, err := store.GetByID(t.Context(), targetID); err == nil {
					t.Fatalf("user should have been deleted")
				}
				return
			}

			got, err := store.GetByID(t.Context(), targetID)
			if err != nil {
				t.Fatalf("target vanished: %v", err)
			}

			if got.Role != tt.wantRole || got.IsSuperUser != tt.wantSuper {
				t.Fatalf("got role=%s super=%v, want role=%s super=%v", got.Role, got.IsSuperUser, tt.wantRole, tt.wantSuper)
			}

			if got.UpdatedAt == nil {
				t.Fatalf("updatedAt should be set after a mutation")
			}
		})
	}
}
