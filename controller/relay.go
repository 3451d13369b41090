package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/model"
	relaycontroller "github.com/pixelforge/pixelforge/relay/controller"
	relaymodel "github.com/pixelforge/pixelforge/relay/model"
	"github.com/pixelforge/pixelforge/service"
)

// RelayImageGenerate godoc
// @Summary Generate an image from a prompt
// @Tags relay
// @Accept json
// @Produce json
// @Param request body relaymodel.GenerationRequest true "prompt and model"
// @Success 200 {object} relaymodel.GenerationResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/replicate [post]
func RelayImageGenerate(dispatcher *relaycontroller.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var request relaymodel.GenerationRequest
		requestBody, err := common.GetRequestBody(c)
		if err == nil {
			err = json.Unmarshal(requestBody, &request)
		}
		if err != nil {
			logger.Errorf(ctx, "image generation failed: %s", err.Error())
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Image generation failed: " + err.Error()})
			return
		}

		result, errWithCode := dispatcher.Generate(ctx, &request)
		if errWithCode != nil {
			c.JSON(errWithCode.StatusCode, ErrorResponse{Error: errWithCode.Message})
			return
		}
		if config.AutoSaveGenerations {
			modelName := request.Model
			if modelName == "" {
				modelName = dispatcher.DefaultModel()
			}
			saveGenerationAsync(ctx, &model.Image{
				UserId:   c.GetInt("id"),
				Prompt:   request.Prompt,
				Model:    modelName,
				ImageUrl: result.ImageUrl,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

func saveGenerationAsync(ctx context.Context, image *model.Image) {
	if image.UserId == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	common.RelayCtxGo(ctx, func() {
		if err := service.SaveGeneration(ctx, image); err != nil {
			logger.Errorf(ctx, "failed to save generation for user %d: %s", image.UserId, err.Error())
		}
	})
}

// RelayTranscribe godoc
// @Summary Transcribe base64 encoded audio
// @Tags relay
// @Accept json
// @Produce json
// @Param request body relaymodel.TranscriptionRequest true "base64 audio"
// @Success 200 {object} map[string]any "provider response"
// @Failure 500 {object} ErrorResponse
// @Router /api/openai/transcribe [post]
func RelayTranscribe(transcriber *relaycontroller.Transcriber) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var request relaymodel.TranscriptionRequest
		requestBody, err := common.GetRequestBody(c)
		if err == nil {
			err = json.Unmarshal(requestBody, &request)
		}
		if err != nil {
			logger.Errorf(ctx, "error processing audio: %s", err.Error())
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process audio"})
			return
		}

		response, errWithCode := transcriber.Transcribe(ctx, &request)
		if errWithCode != nil {
			c.JSON(errWithCode.StatusCode, ErrorResponse{Error: errWithCode.Message})
			return
		}
		contentType := response.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		c.Data(response.StatusCode, contentType, response.Body)
	}
}
