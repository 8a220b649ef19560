package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmed2844ah-star/bokogaming/internal/core"
)

// AdminOnlyMiddleware checks the requesting user's role in the roster
// on each request.
func AdminOnlyMiddleware(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, ok := state.FindByID(userID.(string))
		if !ok || user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
