package controller

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/blob"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/helper"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/model"
)

// CheckUserUsage reports whether usedBytes stays within the per-user quota.
func CheckUserUsage(usedBytes int64) bool {
	return config.UserStorageLimitBytes <= 0 || usedBytes <= config.UserStorageLimitBytes
}

func detectContentType(filename string, declared string) string {
	if declared != "" {
		return declared
	}
	if contentType := mime.TypeByExtension(filepath.Ext(filename)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

// UploadFile godoc
// @Summary Upload a file to the blob store
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file to upload"
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /api/files [post]
func UploadFile(c *gin.Context) {
	if !blob.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Blob storage is not configured",
		})
		return
	}
	userId := c.GetInt("id")
	tooLarge := func() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "File is larger than " + common.FormatBytes(config.MaxUploadBytes),
		})
	}
	if config.MaxUploadBytes > 0 {
		// the multipart envelope gets one extra MiB on top of the file limit
		bodyLimit := config.MaxUploadBytes + 1<<20
		if c.Request.ContentLength > bodyLimit {
			tooLarge()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			tooLarge()
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error retrieving the file",
		})
		return
	}
	defer file.Close()

	if config.MaxUploadBytes > 0 && header.Size > config.MaxUploadBytes {
		tooLarge()
		return
	}
	usedBytes, err := model.SumBytesByUserId(userId)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if !CheckUserUsage(usedBytes + header.Size) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "The total size of uploaded files exceeds your storage limit",
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error reading the file",
		})
		return
	}
	contentType := detectContentType(header.Filename, header.Header.Get("Content-Type"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()
	storeUrl, err := blob.Upload(ctx, "uploads/"+strconv.Itoa(userId), data, contentType)
	if err != nil {
		logger.Errorf(ctx, "failed to upload file for user %d: %s", userId, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to upload file",
		})
		return
	}

	newFile := model.File{
		UserId:    userId,
		FileName:  header.Filename,
		MimeType:  contentType,
		Bytes:     int64(len(data)),
		StoreUrl:  storeUrl,
		CreatedAt: helper.GetTimestamp(),
	}
	if err := newFile.Insert(); err != nil {
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
			"id":  newFile.Id,
			"url": storeUrl,
		},
	})
}

// GetSelfFiles godoc
// @Summary Files uploaded by the current user
// @Tags files
// @Produce json
// @Param p query int false "zero based page"
// @Success 200 {object} Response
// @Router /api/files/self [get]
func GetSelfFiles(c *gin.Context) {
	offset, limit := common.GetPageOffset(c)
	files, err := model.GetUserFiles(c.GetInt("id"), offset, limit)
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
		"data":    files,
	})
}

// DeleteFile godoc
// @Summary Delete an uploaded file
// @Tags files
// @Produce json
// @Param id path int true "file id"
// @Success 200 {object} Response
// @Router /api/files/{id} [delete]
func DeleteFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Invalid parameter",
		})
		return
	}
	userId := c.GetInt("id")
	file, err := model.GetUserFileById(id, userId)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if key := blob.KeyFromURL(file.StoreUrl); key != "" && blob.Enabled() {
		if err := blob.Delete(c.Request.Context(), key); err != nil {
			logger.Warnf(c.Request.Context(), "failed to delete blob %s: %s", key, err.Error())
		}
	}
	if err := model.DeleteUserFileById(id, userId); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
	})
}
