package models

import (
	"time"

	"gorm.io/gorm"
)

// Measurement units accepted for a profile.
const (
	UnitInches      = "inches"
	UnitCentimeters = "centimeters"
)

// Measurement is a named set of optional body measurements owned by one user.
// At most one profile per user carries IsDefault; the controller enforces
// this inside a single transaction when the default changes.
type Measurement struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Label  string `gorm:"not null" json:"label"`
	Unit   string `gorm:"not null;default:'inches'" json:"unit"` // inches or centimeters

	Neck          *float64 `json:"neck"`
	Chest         *float64 `json:"chest"`
	Waist         *float64 `json:"waist"`
	Hips          *float64 `json:"hips"`
	ShoulderWidth *float64 `json:"shoulder_width"`
	SleeveLength  *float64 `json:"sleeve_length"`
	Bicep         *float64 `json:"bicep"`
	Wrist         *float64 `json:"wrist"`
	BackLength    *float64 `json:"back_length"`
	FrontLength   *float64 `json:"front_length"`
	JacketLength  *float64 `json:"jacket_length"`
	ShirtLength   *float64 `json:"shirt_length"`
	TrouserWaist  *float64 `json:"trouser_waist"`
	Inseam        *float64 `json:"inseam"`
	Outseam       *float64 `json:"outseam"`
	Thigh         *float64 `json:"thigh"`
	Knee          *float64 `json:"knee"`
	Calf          *float64 `json:"calf"`
	Ankle         *float64 `json:"ankle"`
	Rise          *float64 `json:"rise"`

	IsDefault bool           `gorm:"not null;default:false;index" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Measurement model
func (Measurement) TableName() string {
	return "measurements"
}

// ValidUnit reports whether u is an accepted measurement unit.
func ValidUnit(u string) bool {
	return u == UnitInches || u == UnitCentimeters
}
