package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSuperUser gates the admin surface. Must run after RequireAuth.
func (m *AuthMiddleware) RequireSuperUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)

		if !ok {
			abortUnauthorized(c, "Missing identity context")
			return
		}

		if !u.IsSuperUser {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Super user required",
				},
			})
			return
		}
		c.Next()
	}
}
