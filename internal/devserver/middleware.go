package devserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/estately/internal/infrastructure/auth"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ctxContactNo = "contact_no"
	ctxRole      = "user_role"
)

// RequireAuth validates the Bearer token and stores the caller's identity in
// the gin context.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := issuer.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ctxContactNo, claims.ContactNo)
		c.Set(ctxRole, string(claims.Role))
		c.Next()
	}
}

// Authorize checks the caller's role against the enforcer's policy for the
// matched route. RequireAuth must run first.
func Authorize(az *Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ctxRole)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found in token"})
			c.Abort()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := az.Allowed("role_"+role.(string), path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
