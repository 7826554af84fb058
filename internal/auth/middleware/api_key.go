package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/if-project/agenda-backend/internal/auth"
)

// APIKeyParam is the query parameter protected routes read the key from.
const APIKeyParam = "api_key"

// APIKeyMiddleware rejects requests whose api_key query parameter is missing
// or differs from expected. Both cases answer 403.
func APIKeyMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.KeyMatches(expected, c.Query(APIKeyParam)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "forbidden"})
			return
		}
		c.Next()
	}
}
