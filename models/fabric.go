package models

import (
	"time"

	"gorm.io/gorm"
)

// Fabric is an inventory row. LowStock is derived at read time and never
// stored.
type Fabric struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	Color            string         `json:"color"`
	Material         string         `json:"material"`
	QuantityYards    float64        `gorm:"not null;default:0" json:"quantity_yards"`
	MinQuantityYards float64        `gorm:"not null;default:0" json:"min_quantity_yards"`
	PricePerYard     float64        `gorm:"not null;default:0" json:"price_per_yard"`
	Supplier         string         `json:"supplier"`
	Active           bool           `gorm:"not null;default:true;index" json:"active"`
	LowStock         bool           `gorm:"-" json:"low_stock"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Fabric model
func (Fabric) TableName() string {
	return "fabrics"
}

// IsLowStock reports whether the on-hand quantity fell below the threshold.
func (f *Fabric) IsLowStock() bool {
	return f.QuantityYards < f.MinQuantityYards
}

// AfterFind populates the derived LowStock field on every read.
func (f *Fabric) AfterFind(*gorm.DB) error {
	f.LowStock = f.IsLowStock()
	return nil
}
