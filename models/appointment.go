package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment types.
const (
	AppointmentMeasurement  = "measurement"
	AppointmentFitting      = "fitting"
	AppointmentConsultation = "consultation"
	AppointmentPickup       = "pickup"
	AppointmentOther        = "other"
)

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Appointment is a scheduled slot at the atelier.
type Appointment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          *uint          `gorm:"index" json:"user_id"` // nil for walk-in bookings taken over the phone
	CustomerName    string         `gorm:"not null" json:"customer_name"`
	Type            string         `gorm:"not null" json:"type"`
	Date            time.Time      `gorm:"not null;index" json:"date"`
	StartTime       string         `gorm:"not null" json:"start_time"` // "15:04" wall-clock slot
	DurationMinutes int            `gorm:"not null;default:30" json:"duration_minutes"`
	Status          string         `gorm:"not null;default:'pending';index" json:"status"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// ValidAppointmentType reports whether t is a known appointment type.
func ValidAppointmentType(t string) bool {
	switch t {
	case AppointmentMeasurement, AppointmentFitting, AppointmentConsultation, AppointmentPickup, AppointmentOther:
		return true
	}
	return false
}

// ValidAppointmentStatus reports whether s is a known appointment status.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}
