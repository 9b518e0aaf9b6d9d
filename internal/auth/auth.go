package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abner-serafim/2025-api-arq/internal/logger"
)

const apiKeyHeader = "X-API-KEY"

// RequireAPIKey gates every partner-facing route. The check runs before any
// handler touches the services, so unauthenticated requests never reach the
// order core.
func RequireAPIKey(expectedKey string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(apiKeyHeader)
		if expectedKey == "" || apiKey != expectedKey {
			log.Warn("unauthorized request", "path", c.FullPath())
			c.Header("WWW-Authenticate", `ApiKey realm="API Key Required"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			return
		}
		c.Next()
	}
}
