package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense is a simple ledger row for shop outgoings.
type Expense struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Category    string         `gorm:"not null" json:"category"`
	Description string         `json:"description"`
	Amount      float64        `gorm:"not null" json:"amount"`
	IncurredAt  time.Time      `gorm:"not null" json:"incurred_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
