package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a physical item a service center sells through the storefront.
type Product struct {
	ID              uint   `gorm:"primaryKey"`
	ServiceCenterID uint   `gorm:"index;not null"`
	Name            string `gorm:"index;not null"`
	Description     *string
	Category        string          `gorm:"not null"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock           int             `gorm:"not null;default:0"`
	ImageURL        *string
	IsActive        bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	ServiceCenter *ServiceCenter `gorm:"foreignKey:ServiceCenterID"`
}
