package model

import (
	"errors"
	"strings"

	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/helper"
	"gorm.io/gorm"
)

// User if you add sensitive fields, don't forget to clean them in setupLogin function.
// Otherwise, the sensitive information will be saved on local storage in plain text!
type User struct {
	Id          int    `json:"id"`
	Username    string `json:"username" gorm:"unique;index" validate:"required,max=30"`
	Password    string `json:"password" gorm:"not null;" validate:"min=8,max=20"`
	DisplayName string `json:"display_name" gorm:"index" validate:"max=20"`
	Role        int    `json:"role" gorm:"type:int;default:1"`   // admin, common
	Status      int    `json:"status" gorm:"type:int;default:1"` // enabled, disabled
	Email       string `json:"email" gorm:"index" validate:"max=50"`
	GoogleId    string `json:"google_id" gorm:"column:google_id;index"`
	CreatedAt   int64  `json:"created_at" gorm:"type:bigint"`
}

func GetUserById(id int, selectAll bool) (*User, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	user := User{Id: id}
	var err error = nil
	if selectAll {
		err = DB.First(&user, "id = ?", id).Error
	} else {
		err = DB.Omit("password").First(&user, "id = ?", id).Error
	}
	return &user, err
}

func (user *User) Insert() error {
	var err error
	if user.Password != "" {
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	if user.Role == 0 {
		user.Role = common.RoleCommonUser
	}
	if user.Status == 0 {
		user.Status = common.UserStatusEnabled
	}
	user.CreatedAt = helper.GetTimestamp()
	return DB.Create(user).Error
}

// ValidateAndFill check password & user status
func (user *User) ValidateAndFill() (err error) {
	// When querying with struct, GORM will only query with non-zero fields,
	// that means if your field's value is 0, '', false or other zero values,
	// it won't be used to build query conditions
	password := user.Password
	username := strings.TrimSpace(user.Username)
	if username == "" || password == "" {
		return errors.New("username or password is empty")
	}
	err = DB.Where("username = ?", username).First(user).Error
	if err != nil {
		// we must make sure check username firstly
		// consider this case: a malicious user set his username as other's email
		err := DB.Where("email = ?", username).First(user).Error
		if err != nil {
			return errors.New("username or password is wrong, or user has been banned")
		}
	}
	okay := common.ValidatePasswordAndHash(password, user.Password)
	if !okay || user.Status != common.UserStatusEnabled {
		return errors.New("username or password is wrong, or user has been banned")
	}
	return nil
}

func (user *User) FillUserByGoogleId() error {
	if user.GoogleId == "" {
		return errors.New("google id is empty")
	}
	return DB.Where(User{GoogleId: user.GoogleId}).First(user).Error
}

func IsGoogleIdAlreadyTaken(googleId string) bool {
	return DB.Where("google_id = ?", googleId).Find(&User{}).RowsAffected == 1
}

func IsUsernameAlreadyTaken(username string) bool {
	return DB.Where("username = ?", username).Find(&User{}).RowsAffected == 1
}

func IsAdmin(userId int) bool {
	if userId == 0 {
		return false
	}
	var user User
	err := DB.Where("id = ?", userId).Select("role").Find(&user).Error
	if err != nil {
		return false
	}
	return user.Role >= common.RoleAdminUser
}

func IsUserEnabled(userId int) (bool, error) {
	if userId == 0 {
		return false, errors.New("user id is empty")
	}
	var user User
	err := DB.Where("id = ?", userId).Select("status").Find(&user).Error
	if err != nil {
		return false, err
	}
	return user.Status == common.UserStatusEnabled, nil
}

func GetMaxUserId() int {
	var user User
	err := DB.Last(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0
	}
	return user.Id
}
