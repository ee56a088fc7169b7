package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func requestIDRouter(captured *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		*captured = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddlewareMintsAndPropagates(t *testing.T) {
	var fromCtx string
	r := requestIDRouter(&fromCtx)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NotEmpty(t, fromCtx)
	require.Equal(t, fromCtx, w.Header().Get("X-Request-ID"))
}

func TestMiddlewareKeepsInboundID(t *testing.T) {
	var fromCtx string
	r := requestIDRouter(&fromCtx)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "req-123", fromCtx)
	require.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
