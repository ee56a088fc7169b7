package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-cpsat-engine/pkg/errors"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/response"
)

// APIKeyHeader is the header name the engine's generate/validate routes require.
const APIKeyHeader = "X-API-Key"

// APIKey returns middleware that rejects requests whose X-API-Key header
// does not match the configured key, using a constant-time comparison to
// avoid leaking the key through timing.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(APIKeyHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
