package controller

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/blob"
	"github.com/pixelforge/pixelforge/common/config"
	relaycontroller "github.com/pixelforge/pixelforge/relay/controller"
)

// GetStatus godoc
// @Summary Service status and enabled features
// @Tags misc
// @Produce json
// @Success 200 {object} Response
// @Router /api/status [get]
func GetStatus(dispatcher *relaycontroller.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "",
			"data": gin.H{
				"version":             common.Version,
				"start_time":          common.StartTime,
				"system_name":         config.SystemName,
				"server_address":      config.ServerAddress,
				"password_login":      config.PasswordLoginEnabled,
				"register_enabled":    config.RegisterEnabled,
				"google_oauth":        config.GoogleOAuthEnabled,
				"google_client_id":    config.GoogleClientId,
				"google_redirect_uri": config.GoogleRedirectUri,
				"blob_storage":        blob.Enabled(),
				"mirror_images":       config.MirrorImagesEnabled,
				"models":              dispatcher.Models(),
				"default_model":       dispatcher.DefaultModel(),
				"generation_timeout":  dispatcher.Timeout().Milliseconds(),
			},
		})
	}
}

// ListModels godoc
// @Summary Accepted image model selectors
// @Tags misc
// @Produce json
// @Success 200 {object} Response
// @Router /api/models [get]
func ListModels(dispatcher *relaycontroller.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "",
			"data": gin.H{
				"models":  dispatcher.Models(),
				"default": dispatcher.DefaultModel(),
			},
		})
	}
}

// MonitorHealth godoc
// @Summary Process health
// @Tags misc
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/monitor/health [get]
func MonitorHealth(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"goroutines": runtime.NumGoroutine(),
		"memory": gin.H{
			"alloc_mb":       m.Alloc / 1024 / 1024,
			"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
			"sys_mb":         m.Sys / 1024 / 1024,
			"num_gc":         m.NumGC,
		},
	})
}

// RelayNotFound answers unknown /api paths with a JSON error instead of the frontend.
func RelayNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: "Invalid URL (" + c.Request.Method + " " + c.Request.URL.Path + ")",
	})
}
