package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/relay/constant"
)

// RelayPanicRecover turns a panic in a relay handler into a 500 error body
// worded for the route that panicked.
func RelayPanicRecover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				relayMode := constant.Path2RelayMode(c.Request.URL.Path)
				logger.SysError(fmt.Sprintf("panic detected in %s relay: %v", constant.RelayModeName(relayMode), err))
				logger.SysError(fmt.Sprintf("stacktrace from panic: %s", string(debug.Stack())))
				message := fmt.Sprintf("Image generation failed: %v", err)
				if relayMode == constant.RelayModeAudioTranscription {
					message = "Failed to process audio"
				}
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": message,
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
