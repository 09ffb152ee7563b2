package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/models"
)

// ContextUserKey is the gin context key the auth middleware stores the
// authenticated user under.
const ContextUserKey = "user"

// GetUserFromContext extracts the authenticated user from the gin context.
// If no user is attached it responds 401 and returns false; handlers behind
// RequireAuth should not normally hit that path.
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "user not authenticated"})
		return nil, false
	}
	userPtr, ok := user.(*models.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "message": "invalid user data in context"})
		return nil, false
	}
	return userPtr, true
}

// UserFromContext is the optional-auth variant: it returns the user when one
// is attached and nil otherwise, never writing to the response.
func UserFromContext(c *gin.Context) *models.User {
	user, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	userPtr, ok := user.(*models.User)
	if !ok {
		return nil
	}
	return userPtr
}
