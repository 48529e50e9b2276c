package models

import (
	"strings"

	"github.com/mini-ozon/internal/constants"
	"github.com/mini-ozon/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// EnsureAdmin 库中没有任何管理员时创建一个，返回是否新建
func EnsureAdmin(db *gorm.DB, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = defaultAdminUsername
	}
	usingDefault := password == ""
	if usingDefault {
		password = defaultAdminPassword
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&exists).Error; err != nil {
			return err
		}
		if exists > 0 {
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := tx.Create(&User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         constants.RoleAdmin,
			Status:       constants.UserStatusActive,
		}).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil || !created {
		return false, err
	}

	if usingDefault {
		logger.Warnw("admin_bootstrapped_with_default_password", "username", username)
	} else {
		logger.Infow("admin_bootstrapped", "username", username)
	}
	return true, nil
}
