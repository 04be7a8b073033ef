package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsMiddleware allows any origin on every route and answers preflight
// requests before the auth gate runs.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requireAPIKey gates every handler behind the shared-secret query
// parameter. No handler observes an unauthenticated request.
func (s *Server) requireAPIKey(c *gin.Context) {
	key := c.Query("api_key")

	if key == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key is required"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
		return
	}

	c.Next()
}
