package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/controller"
	"github.com/pixelforge/pixelforge/middleware"
	relaycontroller "github.com/pixelforge/pixelforge/relay/controller"
)

func SetRelayRouter(router *gin.Engine, dispatcher *relaycontroller.Dispatcher, transcriber *relaycontroller.Transcriber) {
	relayRouter := router.Group("/api")
	relayRouter.Use(middleware.RelayPanicRecover(), middleware.UserAuth())
	{
		relayRouter.POST("/replicate", controller.RelayImageGenerate(dispatcher))
		relayRouter.POST("/openai/transcribe", controller.RelayTranscribe(transcriber))
	}
}
