package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestValidateAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ADMIN_API_KEY", "secret-key")

	r := gin.New()
	r.GET("/admin/ping", ValidateAPIKey, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"state": "success"})
	})

	do := func(key string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		if key != "" {
			req.Header.Set("X-API-KEY", key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusUnauthorized, do(""))
	require.Equal(t, http.StatusUnauthorized, do("wrong"))
	require.Equal(t, http.StatusOK, do("secret-key"))
}
