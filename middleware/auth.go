package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront-service/services"
)

// UserContextKey holds the authenticated user's id in the gin context.
const UserContextKey = "userID"

// SessionCookie carries the signed session token.
const SessionCookie = "session"

// Identity resolves the session cookie into a user id when present.
// A missing or invalid cookie is not an error; guest checkout stays
// possible and the order is simply not linked to an account.
func Identity(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if userID, err := auth.ParseToken(token); err == nil {
				c.Set(UserContextKey, userID)
			}
		}
		c.Next()
	}
}

// GetUserID returns the resolved user id, or nil for guests.
func GetUserID(c *gin.Context) *uint {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uint); ok {
			return &id
		}
	}
	return nil
}
