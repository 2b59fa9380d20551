package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/communityhub/initiatives/pkg/token"
)

// UserIDKey is the gin context key the authenticated user id is stored under.
const UserIDKey = "user_id"

// Auth returns a middleware that validates the Bearer token and stores
// the authenticated user id in the request context.
func Auth(tokens *token.Manager, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "authentication required")
			return
		}

		raw, err := token.ExtractBearer(header)
		if err != nil {
			unauthorized(c, "invalid authorization header")
			return
		}

		userID, err := tokens.Validate(raw)
		if err != nil {
			logger.Debugw("token validation failed", "error", err)
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by Auth.
// The second return value is false when the request is unauthenticated.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
