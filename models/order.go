package models

import (
	"time"

	"gorm.io/gorm"
)

// Order represents one garment commission.
//
// Customer name/email/phone are denormalized copies rather than foreign keys:
// walk-in and phone orders have no account. AssignedTailor and FabricDetails
// are free text for the same reason - order history must survive staff or
// fabric records being removed.
type Order struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	OrderNumber        string         `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerName       string         `gorm:"not null" json:"customer_name"`
	CustomerEmail      string         `json:"customer_email"`
	CustomerPhone      string         `json:"customer_phone"`
	GarmentType        string         `json:"garment_type"`
	GarmentDescription string         `json:"garment_description"`
	FabricDetails      string         `json:"fabric_details"`
	Amount             float64        `gorm:"not null;default:0" json:"amount"`
	DueDate            *time.Time     `json:"due_date"`
	Status             OrderStatus    `gorm:"type:text;index;not null;default:'pending'" json:"status"`
	UserID             *uint          `gorm:"index" json:"user_id"`                // nil for staff-created walk-in orders
	MeasurementID      *uint          `gorm:"index" json:"measurement_id"`         // optional saved measurement profile
	AssignedTailor     string         `json:"assigned_tailor"`                     // free text, not a staff foreign key
	DesignImageS3Key   *string        `json:"design_image_s3_key"`                 // nullable, S3 key for the reference photo
	DesignImageURL     *string        `gorm:"-" json:"design_image_url,omitempty"` // computed field, presigned URL
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
