package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRelayPanicRecover(t *testing.T) {
	engine := gin.New()
	engine.Use(RelayPanicRecover())
	engine.POST("/api/replicate", func(c *gin.Context) {
		panic("nil provider")
	})
	engine.POST("/api/openai/transcribe", func(c *gin.Context) {
		panic("nil adaptor")
	})

	tests := []struct {
		path string
		want string
	}{
		{path: "/api/replicate", want: `{"error":"Image generation failed: nil provider"}`},
		{path: "/api/openai/transcribe", want: `{"error":"Failed to process audio"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}
