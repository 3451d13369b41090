package router

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/controller"
)

// SetWebRouter serves the single page frontend from FRONTEND_DIR. Unknown
// /api paths still answer with JSON.
func SetWebRouter(router *gin.Engine) {
	if config.FrontendDir == "" {
		router.NoRoute(controller.RelayNotFound)
		return
	}
	indexPage := filepath.Join(config.FrontendDir, "index.html")
	if _, err := os.Stat(indexPage); err != nil {
		logger.SysError("frontend index.html not found in " + config.FrontendDir + ", web frontend disabled")
		router.NoRoute(controller.RelayNotFound)
		return
	}
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(static.Serve("/", static.LocalFile(config.FrontendDir, false)))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.RequestURI, "/api") || strings.HasPrefix(c.Request.RequestURI, "/swagger") {
			controller.RelayNotFound(c)
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.File(indexPage)
	})
	logger.SysLog("serving web frontend from " + config.FrontendDir)
}
