package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkshopService is a repair/maintenance job a service center offers.
type WorkshopService struct {
	ID              uint   `gorm:"primaryKey"`
	ServiceCenterID uint   `gorm:"index;not null"`
	Name            string `gorm:"index;not null"`
	Description     *string
	Category        *string
	BasePrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DurationMinutes *int
	IsActive        bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	ComponentUsages []ServiceComponent `gorm:"foreignKey:WorkshopServiceID;constraint:OnDelete:CASCADE"`
}

// ServiceComponent links a workshop service to a component it consumes.
type ServiceComponent struct {
	ID                uint   `gorm:"primaryKey"`
	WorkshopServiceID uint   `gorm:"index;not null"`
	ComponentID       uint   `gorm:"index;not null"`
	Quantity          int    `gorm:"not null;default:1"`
	Unit              string `gorm:"not null;default:'pcs'"`
	CreatedAt         time.Time

	Component *Component `gorm:"foreignKey:ComponentID"`
}
