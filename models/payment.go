package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment records money received against an order.
type Payment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	Order     Order          `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Amount    float64        `gorm:"not null" json:"amount"`
	Method    string         `gorm:"not null" json:"method"` // cash, card or transfer
	PaidAt    time.Time      `gorm:"not null" json:"paid_at"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
