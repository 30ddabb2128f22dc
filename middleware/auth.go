package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ajmal7799/FitStack-sub001/utils"
)

// Context keys set by the identity middleware.
const (
	ContextCallerID   = "callerID"
	ContextCallerRole = "callerRole"
)

// JWTAuth verifies the bearer token issued by the identity service and binds
// the authenticated caller to the request context. When requiredRole is
// non-empty the token's role claim must match it. Revoked tokens are rejected
// via the auth cache.
func JWTAuth(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		callerID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || callerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if requiredRole != "" && role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		if utils.AuthCacheClient != nil {
			key := utils.AuthCachePrefix + utils.HashToken(tokenString)
			if n, err := utils.AuthCacheClient.Exists(c.Request.Context(), key).Result(); err == nil && n > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				return
			}
		}

		c.Set(ContextCallerID, callerID)
		c.Set(ContextCallerRole, role)
		c.Next()
	}
}
