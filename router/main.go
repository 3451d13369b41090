package router

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	_ "github.com/pixelforge/pixelforge/docs"
	"github.com/pixelforge/pixelforge/middleware"
	relaycontroller "github.com/pixelforge/pixelforge/relay/controller"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetRouter(router *gin.Engine, dispatcher *relaycontroller.Dispatcher, transcriber *relaycontroller.Transcriber) {
	router.Use(middleware.CORS())
	SetApiRouter(router, dispatcher)
	SetRelayRouter(router, dispatcher, transcriber)

	// a remote swagger.json can replace the generated one
	var swaggerOptions []func(*ginSwagger.Config)
	if swaggerURL := os.Getenv("SWAGGER_JSON_URL"); swaggerURL != "" {
		swaggerOptions = append(swaggerOptions, ginSwagger.URL(swaggerURL))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerOptions...))
	logger.SysLog("Swagger UI enabled at /swagger/index.html")

	frontendBaseUrl := os.Getenv("FRONTEND_BASE_URL")
	if config.IsMasterNode && frontendBaseUrl != "" {
		frontendBaseUrl = ""
		logger.SysLog("FRONTEND_BASE_URL is ignored on master node")
	}
	if frontendBaseUrl == "" {
		SetWebRouter(router)
	} else {
		frontendBaseUrl = strings.TrimSuffix(frontendBaseUrl, "/")
		router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, fmt.Sprintf("%s%s", frontendBaseUrl, c.Request.RequestURI))
		})
	}
}
