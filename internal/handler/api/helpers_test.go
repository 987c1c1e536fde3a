//go:build unit

package api_test

import (
	"net/http"
	"time"

	"inspection-marketplace/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeAuth stands in for RequireAuth: any bearer token authenticates as the given user.
func fakeAuth(userID uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Set("token_id", "jti-"+userID.String())
		c.Set("token_expires_at", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		c.Next()
	}
}
