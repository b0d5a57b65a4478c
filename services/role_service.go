package services

import (
	"errors"

	"github.com/sartoria/sartoria-api/models"
	"gorm.io/gorm"
)

// CheckRole reports whether the user holds the given role. A missing row is
// an ordinary "no", not an error.
func CheckRole(db *gorm.DB, userID uint, role string) (bool, error) {
	var userRole models.UserRole
	err := db.Where("user_id = ? AND role = ?", userID, role).First(&userRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GrantRole assigns a role to a user if not already granted.
func GrantRole(db *gorm.DB, userID uint, role string) error {
	has, err := CheckRole(db, userID, role)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return db.Create(&models.UserRole{UserID: userID, Role: role}).Error
}
