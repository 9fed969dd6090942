package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header scrapers put the metrics key in.
const APIKeyHeader = "X-API-Key"

// MetricsAuth guards operational endpoints such as /metrics with a shared
// API key. An empty key leaves the endpoint open, which is the local default.
func MetricsAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody("INVALID_API_KEY", "Invalid or missing API key"))
			return
		}
		c.Next()
	}
}
