package middleware

import (
	"net/http"
	"time"

	"sellify-app/database"
	"sellify-app/internal/domain/access"
	"sellify-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireActiveAccess blocks page-mutation routes for locked accounts
// (expired trial, never verified). Limited accounts still pass; plan limits
// are checked per-operation in the handlers.
func RequireActiveAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		var user users.User

		if err := database.DB.Preload("Plan").Where("id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		state := access.ComputeEffectiveAccessState(time.Now(), user)
		if state == access.AccessLocked {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your trial has ended. Verify your account or upgrade to continue.",
			})
			return
		}

		c.Next()
	}
}
