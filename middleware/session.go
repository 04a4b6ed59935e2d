package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartCookie identifies the session-scoped cart snapshot.
const CartCookie = "cart_session"

// CartSessionKey holds the cart session id in the gin context.
const CartSessionKey = "cartSession"

// CartSession issues a cart session id on first use and carries it in
// the gin context for the cart endpoints.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CartCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(CartCookie, sessionID, 30*24*3600, "/", "", false, true)
		}
		c.Set(CartSessionKey, sessionID)
		c.Next()
	}
}

// GetCartSession returns the cart session id for the request.
func GetCartSession(c *gin.Context) string {
	if val, ok := c.Get(CartSessionKey); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
