package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Component is a spare part in a service center's inventory, usable both as
// a price-list reference and as an ingredient of a workshop service.
type Component struct {
	ID              uint   `gorm:"primaryKey"`
	ServiceCenterID uint   `gorm:"index;not null"`
	Name            string `gorm:"index;not null"`
	Manufacturer    string `gorm:"not null"`
	Supplier        *string
	PartNumber      *string
	// Bike manufacturers/models this part fits, stored as JSON arrays.
	CompatibleManufacturers datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CompatibleModels        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Stock                   int                         `gorm:"not null;default:0"`
	Unit                    string                      `gorm:"not null;default:'pcs'"`
	UnitPrice               decimal.Decimal             `gorm:"type:decimal(10,2);not null"`
	IsActive                bool                        `gorm:"not null;default:true"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
