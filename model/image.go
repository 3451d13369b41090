package model

import (
	"errors"

	"github.com/pixelforge/pixelforge/common/helper"
)

// Image is one generation record. A user may own any number of them.
type Image struct {
	Id        int    `json:"id"`
	UserId    int    `json:"user_id" gorm:"index"`
	Prompt    string `json:"prompt" gorm:"type:text"`
	Model     string `json:"model" gorm:"index"`
	ImageUrl  string `json:"image_url" gorm:"type:text"`
	StoreUrl  string `json:"store_url" gorm:"type:text"`
	Timestamp int64  `json:"timestamp" gorm:"type:bigint;index"` // unit is millisecond
}

func (image *Image) Insert() error {
	if image.Timestamp == 0 {
		image.Timestamp = helper.GetTimestampMilli()
	}
	return DB.Create(image).Error
}

func (image *Image) Update() error {
	return DB.Model(image).Select("prompt", "model", "store_url").Updates(image).Error
}

func (image *Image) Delete() error {
	return DB.Delete(image).Error
}

func GetImageById(id int) (*Image, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var image Image
	err := DB.First(&image, "id = ?", id).Error
	return &image, err
}

// GetImageByIdAndUserId returns gorm.ErrRecordNotFound when the record
// belongs to someone else.
func GetImageByIdAndUserId(id int, userId int) (*Image, error) {
	if id == 0 || userId == 0 {
		return nil, errors.New("id or userId is empty")
	}
	var image Image
	err := DB.First(&image, "id = ? and user_id = ?", id, userId).Error
	return &image, err
}

// GetUserImages returns the user's records, newest first.
func GetUserImages(userId int) ([]*Image, error) {
	var images []*Image
	err := DB.Where("user_id = ?", userId).Order("timestamp desc").Order("id desc").Find(&images).Error
	return images, err
}

func GetAllImages(startIdx int, num int) (images []*Image, total int64, err error) {
	err = DB.Model(&Image{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = DB.Order("timestamp desc").Order("id desc").Limit(num).Offset(startIdx).Find(&images).Error
	return images, total, err
}

func CountUserImages(userId int) (count int64, err error) {
	err = DB.Model(&Image{}).Where("user_id = ?", userId).Count(&count).Error
	return count, err
}
