package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The engine API takes JSON bodies authenticated by a static X-API-Key
// header, so the preflight surface is small: no cookies, three methods
// (GET, POST and the OPTIONS preflight), three request headers.
const (
	allowedMethods = "GET, POST, OPTIONS"
	allowedHeaders = "Content-Type, X-API-Key, X-Request-ID"
)

// New returns CORS middleware honoring an origin allowlist; an empty list
// allows any origin.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")

		switch {
		case origin != "":
			if _, ok := originSet[strings.TrimRight(origin, "/")]; allowAll || ok {
				h.Set("Access-Control-Allow-Origin", origin)
			}
		case allowAll:
			h.Set("Access-Control-Allow-Origin", "*")
		}

		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", allowedMethods)
		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
