package middleware

import (
	"net/http"

	"marketplace-service/internal/identity"

	"github.com/gin-gonic/gin"
)

// RequireIdentity rejects unauthenticated requests. Screen navigation
// never passes through here (guards there redirect silently); this
// protects the data routes, which fail closed.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := Controller(c)
		if ctrl == nil || ctrl.Identity() == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireRole additionally demands a specific active role.
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := Controller(c)
		if ctrl == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		ident := ctrl.Identity()
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if ident.ActiveRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "role not permitted",
			})
			return
		}
		c.Next()
	}
}
