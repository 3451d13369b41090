package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/stretchr/testify/assert"
)

func TestCORSPreflight(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS())
	engine.GET("/api/status", func(c *gin.Context) {
		c.Header(logger.RequestIdKey, "abc")
		c.String(http.StatusOK, "ok")
	})

	tests := []struct {
		name    string
		headers string
		allowed bool
	}{
		{name: "authorization", headers: "authorization", allowed: true},
		{name: "content type and request id", headers: "content-type,x-request-id", allowed: true},
		{name: "custom header", headers: "x-custom", allowed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/status", nil)
			req.Header.Set("Origin", "https://studio.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			req.Header.Set("Access-Control-Request-Headers", tt.headers)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			if tt.allowed {
				assert.Equal(t, "https://studio.example.com", w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORSExposesRequestId(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS())
	engine.GET("/api/status", func(c *gin.Context) {
		c.Header(logger.RequestIdKey, "abc")
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "https://studio.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://studio.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, logger.RequestIdKey, w.Header().Get("Access-Control-Expose-Headers"))
}
