package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/model"
	"github.com/pixelforge/pixelforge/service"
	"gorm.io/gorm"
)

// ImageResponse is the API view of a generation record.
type ImageResponse struct {
	Id         int    `json:"id"`
	UserId     int    `json:"user_id"`
	Prompt     string `json:"prompt"`
	Model      string `json:"model"`
	ImageUrl   string `json:"image_url"`
	StoreUrl   string `json:"store_url,omitempty"`
	DisplayUrl string `json:"display_url"`
	Timestamp  int64  `json:"timestamp"`
}

type CreateImageRequest struct {
	ImageUrl string `json:"image_url" validate:"required"`
	Prompt   string `json:"prompt"`
	Model    string `json:"model" validate:"max=64"`
}

type UpdateImageRequest struct {
	Prompt *string `json:"prompt"`
	Model  *string `json:"model" validate:"omitempty,max=64"`
}

func toImageResponse(image *model.Image) (*ImageResponse, error) {
	var response ImageResponse
	if err := copier.Copy(&response, image); err != nil {
		return nil, err
	}
	response.DisplayUrl = response.StoreUrl
	if response.DisplayUrl == "" {
		response.DisplayUrl = response.ImageUrl
	}
	return &response, nil
}

func toImageResponses(images []*model.Image) ([]*ImageResponse, error) {
	responses := make([]*ImageResponse, 0, len(images))
	for _, image := range images {
		response, err := toImageResponse(image)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// CreateImage godoc
// @Summary Save a generation record
// @Tags images
// @Accept json
// @Produce json
// @Param request body CreateImageRequest true "record"
// @Success 200 {object} Response
// @Router /api/images [post]
func CreateImage(c *gin.Context) {
	var request CreateImageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Invalid parameter",
		})
		return
	}
	if err := common.Validate.Struct(&request); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Input is illegal " + err.Error(),
		})
		return
	}
	image := model.Image{
		UserId:   c.GetInt("id"),
		Prompt:   request.Prompt,
		Model:    request.Model,
		ImageUrl: request.ImageUrl,
	}
	if err := service.SaveGeneration(c.Request.Context(), &image); err != nil {
		logger.Errorf(c.Request.Context(), "failed to save image record: %s", err.Error())
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	response, err := toImageResponse(&image)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    response,
	})
}

// GetSelfImages godoc
// @Summary Current user's generation records, newest first
// @Tags images
// @Produce json
// @Success 200 {object} Response
// @Router /api/images/self [get]
func GetSelfImages(c *gin.Context) {
	images, err := model.CacheGetUserImages(c.GetInt("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	responses, err := toImageResponses(images)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    responses,
	})
}

// GetAllImages godoc
// @Summary Every generation record, paginated
// @Tags images
// @Produce json
// @Param p query int false "zero based page"
// @Success 200 {object} Response
// @Router /api/images [get]
func GetAllImages(c *gin.Context) {
	offset, limit := common.GetPageOffset(c)
	images, total, err := model.GetAllImages(offset, limit)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	responses, err := toImageResponses(images)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"list":        responses,
			"currentPage": common.GetPageQuery(c),
			"pageSize":    limit,
			"total":       total,
		},
	})
}

func getOwnedImage(c *gin.Context) (*model.Image, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Invalid parameter",
		})
		return nil, false
	}
	image, err := model.GetImageByIdAndUserId(id, c.GetInt("id"))
	if err != nil {
		message := err.Error()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			message = "Image not found"
		}
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": message,
		})
		return nil, false
	}
	return image, true
}

// UpdateImage godoc
// @Summary Edit prompt or model of an owned record
// @Tags images
// @Accept json
// @Produce json
// @Param id path int true "record id"
// @Param request body UpdateImageRequest true "fields to change"
// @Success 200 {object} Response
// @Router /api/images/{id} [put]
func UpdateImage(c *gin.Context) {
	var request UpdateImageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Invalid parameter",
		})
		return
	}
	if err := common.Validate.Struct(&request); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Input is illegal " + err.Error(),
		})
		return
	}
	image, ok := getOwnedImage(c)
	if !ok {
		return
	}
	if request.Prompt != nil {
		image.Prompt = *request.Prompt
	}
	if request.Model != nil {
		image.Model = *request.Model
	}
	if err := image.Update(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	model.CacheInvalidateUserImages(image.UserId)
	response, err := toImageResponse(image)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    response,
	})
}

// DeleteImage godoc
// @Summary Delete an owned record
// @Tags images
// @Produce json
// @Param id path int true "record id"
// @Success 200 {object} Response
// @Router /api/images/{id} [delete]
func DeleteImage(c *gin.Context) {
	image, ok := getOwnedImage(c)
	if !ok {
		return
	}
	if err := image.Delete(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	model.CacheInvalidateUserImages(image.UserId)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
	})
}
