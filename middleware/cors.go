package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common/logger"
	cors "github.com/rs/cors/wrapper/gin"
)

// CORS lets the studio frontend call the API from any origin with cookies.
// Only the headers the API reads are accepted on preflight.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", logger.RequestIdKey},
		ExposedHeaders:   []string{logger.RequestIdKey},
	})
}
