package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func apiKeyRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKey(key))
	r.GET("/secured", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAPIKeyMissing(t *testing.T) {
	r := apiKeyRouter("secret")

	req, _ := http.NewRequest(http.MethodGet, "/secured", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyMismatch(t *testing.T) {
	r := apiKeyRouter("secret")

	req, _ := http.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set(APIKeyHeader, "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyMatch(t *testing.T) {
	r := apiKeyRouter("secret")

	req, _ := http.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set(APIKeyHeader, "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
