package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListType: "services" | "components" | "products" | "combined"
const (
	ListTypeServices   = "services"
	ListTypeComponents = "components"
	ListTypeProducts   = "products"
	ListTypeCombined   = "combined"
)

// ItemType: "service" | "component" | "product" | "custom"
const (
	ItemTypeService   = "service"
	ItemTypeComponent = "component"
	ItemTypeProduct   = "product"
	ItemTypeCustom    = "custom"
)

// PriceList is a tenant's published listing of priced positions.
// At most one list per service center carries IsDefault=true — enforced both
// by a partial unique index and by a sibling-clear inside the write tx.
type PriceList struct {
	ID              uint   `gorm:"primaryKey"`
	ServiceCenterID uint   `gorm:"index;not null"`
	Name            string `gorm:"not null"`
	Description     *string
	ListType        string `gorm:"type:varchar(20);not null"`
	EffectiveFrom   *time.Time
	EffectiveTo     *time.Time
	IsDefault       bool `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []PriceListItem `gorm:"foreignKey:PriceListID;constraint:OnDelete:CASCADE"`
}

// PriceListItem is one priced position, denormalized at resolution time:
// name/price/description copied from the referenced entity are a snapshot,
// not a live link.
type PriceListItem struct {
	ID          uint   `gorm:"primaryKey"`
	PriceListID uint   `gorm:"index;not null"`
	ItemType    string `gorm:"type:varchar(20);not null"`
	// ReferenceID points to the service/component/product row; nil for custom items.
	ReferenceID     *uint
	ItemName        string `gorm:"not null"`
	Description     *string
	Unit            *string
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DurationMinutes *int
	WarrantyMonths  *int
	IsActive        bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
