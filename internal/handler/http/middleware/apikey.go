package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth rejects requests that do not carry one of the configured keys in
// the X-API-Key header. With no keys configured the check is disabled.
func APIKeyAuth(keys []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		allowed[key] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}
		if _, ok := allowed[c.GetHeader("X-API-Key")]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "A valid API key is required"})
			return
		}
		c.Next()
	}
}
