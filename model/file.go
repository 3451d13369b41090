package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// File is a blob uploaded through /api/files.
type File struct {
	Id        int64  `json:"id"`
	UserId    int    `json:"user_id" gorm:"index"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	Bytes     int64  `json:"bytes"`
	StoreUrl  string `json:"store_url" gorm:"type:text"`
	CreatedAt int64  `json:"created_at" gorm:"type:bigint"`
}

func SumBytesByUserId(userId int) (int64, error) {
	if userId == 0 {
		return 0, errors.New("userId is empty")
	}

	var totalBytes int64
	err := DB.Model(&File{}).Where("user_id = ?", userId).Select("COALESCE(SUM(bytes), 0)").Scan(&totalBytes).Error
	if err != nil {
		return 0, err
	}

	return totalBytes, nil
}

func GetUserFiles(userId int, startIdx int, num int) ([]*File, error) {
	var files []*File
	err := DB.Where("user_id = ?", userId).Order("id desc").Limit(num).Offset(startIdx).Find(&files).Error
	return files, err
}

func GetUserFileById(id int64, userId int) (*File, error) {
	var file File
	err := DB.Where("id = ? and user_id = ?", id, userId).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file %d not found", id)
		}
		return nil, err
	}
	return &file, nil
}

func DeleteUserFileById(id int64, userId int) error {
	file, err := GetUserFileById(id, userId)
	if err != nil {
		return err
	}
	return file.Delete()
}

func (file *File) Insert() error {
	return DB.Create(file).Error
}

func (file *File) Delete() error {
	return DB.Delete(file).Error
}
