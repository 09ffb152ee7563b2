package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/util"
)

// bearerToken extracts the token from an "Authorization: Bearer <t>" header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireAuth aborts with 401 unless the request carries a valid bearer
// token that resolves to an existing user. The user is attached to the
// context for handlers.
func RequireAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			util.RespondUnauthorized(c, "authentication required")
			c.Abort()
			return
		}

		user, err := svc.ValidateToken(token)
		if err != nil {
			util.RespondUnauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and proceeds
// anonymously on any failure. Handlers must treat the identity as absent,
// not as an error.
func OptionalAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := svc.ValidateToken(token); err == nil {
				c.Set(util.ContextUserKey, user)
			}
		}
		c.Next()
	}
}
