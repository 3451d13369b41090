package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/controller"
	"github.com/pixelforge/pixelforge/middleware"
	relaycontroller "github.com/pixelforge/pixelforge/relay/controller"
)

func SetApiRouter(router *gin.Engine, dispatcher *relaycontroller.Dispatcher) {
	apiRouter := router.Group("/api")
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		apiRouter.GET("/status", controller.GetStatus(dispatcher))
		apiRouter.GET("/models", controller.ListModels(dispatcher))
		apiRouter.GET("/monitor/health", controller.MonitorHealth)
		apiRouter.GET("/oauth/google", middleware.CriticalRateLimit(), controller.GoogleOAuth)
		apiRouter.GET("/oauth/google/callback", middleware.CriticalRateLimit(), controller.GoogleOAuthCallback)

		userRoute := apiRouter.Group("/user")
		{
			userRoute.POST("/register", middleware.CriticalRateLimit(), controller.Register)
			userRoute.POST("/login", middleware.CriticalRateLimit(), controller.Login)
			userRoute.GET("/logout", controller.Logout)

			selfRoute := userRoute.Group("/")
			selfRoute.Use(middleware.UserAuth())
			{
				selfRoute.GET("/self", controller.GetSelf)
				selfRoute.GET("/token", controller.GenerateAccessToken)
			}
		}

		imageRoute := apiRouter.Group("/images")
		{
			imageRoute.GET("", middleware.AdminAuth(), controller.GetAllImages)
			imageRoute.POST("", middleware.UserAuth(), controller.CreateImage)
			imageRoute.GET("/self", middleware.UserAuth(), controller.GetSelfImages)
			imageRoute.PUT("/:id", middleware.UserAuth(), controller.UpdateImage)
			imageRoute.DELETE("/:id", middleware.UserAuth(), controller.DeleteImage)
		}

		fileRoute := apiRouter.Group("/files")
		fileRoute.Use(middleware.UserAuth())
		{
			fileRoute.POST("", controller.UploadFile)
			fileRoute.GET("/self", controller.GetSelfFiles)
			fileRoute.DELETE("/:id", controller.DeleteFile)
		}
	}
}
