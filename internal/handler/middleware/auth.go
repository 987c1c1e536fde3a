package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/pkg/cookie"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errs.New("unauthenticated")

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey    = "user_id"
	ctxUserRoleKey  = "user_role"
	ctxTokenIDKey   = "token_id"
	ctxTokenExpKey  = "token_expires_at"
	ctxJWTClaimsKey = "jwt_claims"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth accepts the access_token cookie first, then a Bearer header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Access token required", nil)
			return
		}

		p, err := m.tokenValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, p.UserID)
		c.Set(ctxUserRoleKey, p.Role)
		c.Set(ctxTokenIDKey, p.TokenID)
		c.Set(ctxTokenExpKey, p.ExpiresAt)
		c.Set(ctxJWTClaimsKey, map[string]any{
			"user_id": p.UserID.String(),
			"role":    string(p.Role),
		})
		c.Next()
	}
}

// RequireRole must run after RequireAuth. Roles are disjoint, not a hierarchy: an admin
// cannot act as a buyer.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthenticated, "Internal server error", nil)
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		httperr.AbortWithError(c, http.StatusForbidden, errs.Newf("role %s not allowed", role), "Insufficient permissions", nil)
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetToken returns the jti and expiry of the token that authenticated the request.
func GetToken(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ctxTokenIDKey)
	exp, _ := c.Get(ctxTokenExpKey)
	t, _ := exp.(time.Time)
	return jti, t
}
