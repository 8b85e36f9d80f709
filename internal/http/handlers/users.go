package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/predixarena/authsvc/internal/config"
	"github.com/predixarena/authsvc/internal/domain/user"
	"github.com/predixarena/authsvc/internal/repo/postgres"
)

type UserFinder interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type UsersHandler struct {
	users UserFinder
}

func NewUsersHandler(users UserFinder) *UsersHandler {
	return &UsersHandler{users: users}
}

// Profile returns the public projection for any user id. Any
// authenticated caller may fetch any profile; ownership is not checked,
// matching the upstream product behavior.
func (h *UsersHandler) Profile(ctx *gin.Context) {
	id := ctx.Param("userId")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not fetch profile")
		return
	}

	ctx.JSON(http.StatusOK, u.PublicView())
}
