package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/predixarena/authsvc/internal/config"
	"github.com/predixarena/authsvc/internal/domain/user"
	"github.com/predixarena/authsvc/internal/http/middlewares"
	"github.com/predixarena/authsvc/internal/repo/postgres"
)

type AdminUserStore interface {
	ListExcluding(ctx context.Context, excludeID string) ([]user.User, error)
	SetRoleFlags(ctx context.Context, id string, role user.Role, isSuperUser bool) (user.User, error)
	Delete(ctx context.Context, id string) error
}

type AdminUsersHandler struct {
	users AdminUserStore
}

func NewAdminUsersHandler(users AdminUserStore) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

// List returns every user except the caller, newest first.
func (h *AdminUsersHandler) List(ctx *gin.Context) {
	caller, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.users.ListExcluding(cctx, caller.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	items := make([]user.Public, 0, len(users))

	for _, u := range users {
		items = append(items, u.PublicView())
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users": items,
		"count": len(items),
	})
}

type UserActionRequest struct {
	Action string `json:"action" binding:"required,oneof=promote_admin promote_ops delete"`
}

// Update applies one of the admin actions to the target user.
func (h *AdminUsersHandler) Update(ctx *gin.Context) {
	var req UserActionRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("userId")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	switch req.Action {
	case "delete":
		err := h.users.Delete(cctx, id)

		if err != nil {
			if errors.Is(err, postgres.ErrUserNotFound) {
				RespondNotFound(ctx, "User not found")
				return
			}

			RespondInternal(ctx, "Could not delete user")
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})

	case "promote_admin":
		h.applyRoleChange(ctx, cctx, id, user.RoleAdmin, true)

	case "promote_ops":
		h.applyRoleChange(ctx, cctx, id, user.RoleOps, false)
	}
}

func (h *AdminUsersHandler) applyRoleChange(ctx *gin.Context, cctx context.Context, id string, role user.Role, super bool) {
	u, err := h.users.SetRoleFlags(cctx, id, role, super)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not update user")
		return
	}

	ctx.JSON(http.StatusOK, u.PublicView())
}
