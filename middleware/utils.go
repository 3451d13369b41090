package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common/helper"
	"github.com/pixelforge/pixelforge/common/logger"
)

func abortWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   helper.MessageWithRequestId(message, c.GetString(logger.RequestIdKey)),
		"message": message,
	})
	c.Abort()
	logger.Error(c.Request.Context(), message)
}
