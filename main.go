package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/blob"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/middleware"
	"github.com/pixelforge/pixelforge/model"
	"github.com/pixelforge/pixelforge/monitor"
	relaycontroller "github.com/pixelforge/pixelforge/relay/controller"
	"github.com/pixelforge/pixelforge/router"
)

// monitorGoroutines periodically logs goroutine count and memory usage.
func monitorGoroutines() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		count := runtime.NumGoroutine()
		if count > 5000 {
			logger.SysError(fmt.Sprintf("high goroutine count detected: %d", count))
		} else if count > 2000 {
			logger.SysLog(fmt.Sprintf("goroutine count elevated: %d", count))
		} else if config.DebugEnabled {
			logger.SysLog(fmt.Sprintf("goroutine count: %d", count))
		}

		if config.DebugEnabled {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			logger.SysLog(fmt.Sprintf("memory: Alloc=%dMB, TotalAlloc=%dMB, Sys=%dMB, NumGC=%d",
				m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.NumGC))
		}
	}
}

// @title PixelForge API
// @version 1.0
// @description Image generation relay, transcription pass-through and generation records.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	common.Init()
	logger.SetupLogger()
	logger.SysLog(fmt.Sprintf("%s %s started", config.SystemName, common.Version))
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.DebugEnabled {
		logger.SysLog("running in debug mode")
	}
	var err error
	// Initialize SQL Database
	model.DB, err = model.InitDB("SQL_DSN")
	if err != nil {
		logger.FatalLog("failed to initialize database: " + err.Error())
	}
	err = model.CreateRootAccountIfNeed()
	if err != nil {
		logger.FatalLog("database init error: " + err.Error())
	}
	defer func() {
		err := model.CloseDB()
		if err != nil {
			logger.FatalLog("failed to close database: " + err.Error())
		}
	}()

	// Initialize Redis
	err = common.InitRedisClient()
	if err != nil {
		logger.FatalLog("failed to initialize Redis: " + err.Error())
	}

	if config.ReplicateAPIToken == "" {
		logger.SysError("REPLICATE_API_TOKEN is not set, image generation will fail")
	}
	if config.OpenAIAPIKey == "" {
		logger.SysError("OPENAI_API_KEY is not set, transcription will fail")
	}
	if !blob.Enabled() {
		logger.SysLog("blob store is not configured, uploads and image mirroring are disabled")
	}

	if err := monitor.StartCloudWatchReporter(context.Background()); err != nil {
		logger.SysError("failed to start CloudWatch reporter: " + err.Error())
	}
	defer monitor.StopCloudWatchReporter()

	go monitorGoroutines()

	dispatcher := relaycontroller.NewReplicateDispatcher()
	transcriber := relaycontroller.NewOpenAITranscriber()
	logger.SysLog(fmt.Sprintf("image models: %v (default %s, timeout %s)", dispatcher.Models(), dispatcher.DefaultModel(), dispatcher.Timeout()))

	// Initialize HTTP server
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middleware.RequestId())
	middleware.SetUpLogger(server)
	server.Use(middleware.CloudWatchMetrics())
	// Initialize session store
	store := cookie.NewStore([]byte(config.SessionSecret))
	server.Use(sessions.Sessions("session", store))

	router.SetRouter(server, dispatcher, transcriber)

	var port = os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}
	err = server.Run(":" + port)
	if err != nil {
		logger.FatalLog("failed to start HTTP server: " + err.Error())
	}
}
