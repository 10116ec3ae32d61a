package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/service"
)

const ContextKeySession = "session"

// SessionMiddleware validates the bearer token and stores the resulting
// session in the gin context.
func SessionMiddleware(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		sess, err := sessions.Authenticate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if errors.Is(err, domain.ErrSessionExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   gin.H{"code": "SESSION_EXPIRED", "message": "session expired; sign in again"},
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// GetSession extracts the session from the Gin context.
func GetSession(c *gin.Context) (*domain.Session, error) {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	sess, ok := val.(*domain.Session)
	if !ok || sess == nil {
		return nil, domain.ErrUnauthorized
	}
	return sess, nil
}
