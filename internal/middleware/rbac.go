package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-admin/internal/response"
)

// RequireRole lets the request through when the token's role is one of roles.
func RequireRole(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, r := range roles {
			if claims.RoleID == r {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
	}
}

// NoStore marks responses as uncacheable. Admin data and exports carry
// personal records.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
