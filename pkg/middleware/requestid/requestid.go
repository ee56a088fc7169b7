package requestid

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerKey = "X-Request-ID"

type contextKey struct{}

// Middleware assigns a request ID to every incoming request, echoes it on
// the response, and threads it through the request context so the engine
// service can reuse it as the run id on its solver logs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(headerKey)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), contextKey{}, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(headerKey, reqID)

		c.Next()
	}
}

// Value returns the request ID carried by a Gin context, "" when absent.
func Value(c *gin.Context) string {
	return FromContext(c.Request.Context())
}

// FromContext returns the request ID carried by a context, "" when absent.
func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return ""
}
