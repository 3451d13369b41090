package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
)

var (
	UserId2ImagesCacheSeconds = config.SyncFrequency
	UserId2StatusCacheSeconds = config.SyncFrequency
)

func userImagesCacheKey(userId int) string {
	return fmt.Sprintf("user_images:%d", userId)
}

// CacheGetUserImages reads the user's gallery through Redis when enabled.
func CacheGetUserImages(userId int) ([]*Image, error) {
	if !common.RedisEnabled {
		return GetUserImages(userId)
	}
	imagesString, err := common.RedisGet(userImagesCacheKey(userId))
	if err == nil {
		var images []*Image
		if err = json.Unmarshal([]byte(imagesString), &images); err == nil {
			return images, nil
		}
	}
	images, err := GetUserImages(userId)
	if err != nil {
		return nil, err
	}
	jsonBytes, err := json.Marshal(images)
	if err != nil {
		return images, nil
	}
	err = common.RedisSet(userImagesCacheKey(userId), string(jsonBytes), time.Duration(UserId2ImagesCacheSeconds)*time.Second)
	if err != nil {
		logger.SysError("Redis set user images error: " + err.Error())
	}
	return images, nil
}

func CacheInvalidateUserImages(userId int) {
	if !common.RedisEnabled {
		return
	}
	if err := common.RedisDel(userImagesCacheKey(userId)); err != nil {
		logger.SysError("Redis delete user images error: " + err.Error())
	}
}

func CacheIsUserEnabled(userId int) (bool, error) {
	if !common.RedisEnabled {
		return IsUserEnabled(userId)
	}
	enabled, err := common.RedisGet(fmt.Sprintf("user_enabled:%d", userId))
	if err == nil {
		return enabled == "1", nil
	}

	userEnabled, err := IsUserEnabled(userId)
	if err != nil {
		return false, err
	}
	enabled = "0"
	if userEnabled {
		enabled = "1"
	}
	err = common.RedisSet(fmt.Sprintf("user_enabled:%d", userId), enabled, time.Duration(UserId2StatusCacheSeconds)*time.Second)
	if err != nil {
		logger.SysError("Redis set user enabled error: " + err.Error())
	}
	return userEnabled, nil
}
