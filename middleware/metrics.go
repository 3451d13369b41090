package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/monitor"
)

// CloudWatchMetrics records latency, status class and concurrency per request.
func CloudWatchMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		monitor.IncrementConcurrent()
		defer monitor.DecrementConcurrent()

		c.Next()

		statusCode := c.Writer.Status()
		success := statusCode >= 200 && statusCode < 400
		monitor.RecordRequest(time.Since(startTime), statusCode, success)
	}
}
