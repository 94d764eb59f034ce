package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of the keys this package stores in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	userIDKey      = contextKey("userID")
	tokenIDKey     = contextKey("tokenID")
	tokenExpiryKey = contextKey("tokenExpiry")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetTokenFromContext returns the id (jti) and expiry of the bearer token that authenticated the request.
func GetTokenFromContext(c *gin.Context) (string, time.Time, bool) {
	ctx := c.Request.Context()
	tokenID, ok := ctx.Value(tokenIDKey).(string)
	if !ok || tokenID == "" {
		return "", time.Time{}, false
	}
	expiresAt, _ := ctx.Value(tokenExpiryKey).(time.Time)
	return tokenID, expiresAt, true
}
