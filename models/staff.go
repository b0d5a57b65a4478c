package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff is a roster row. Deactivation flips Active; staff are never
// hard-deleted so historical orders keep their context.
type Staff struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Role      string         `gorm:"not null" json:"role"` // tailor, cutter, finisher, front_desk
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Active    bool           `gorm:"not null;default:true;index" json:"active"`
	HiredAt   *time.Time     `json:"hired_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
