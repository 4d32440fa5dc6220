package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Any value is directly settable by the selling service
// center — there is no enforced transition graph.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          uint            `gorm:"index;not null"`
	ServiceCenterID uint            `gorm:"index;not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryAddress string          `gorm:"not null"`
	Comment         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User  *User       `gorm:"foreignKey:UserID"`
}

// OrderItem snapshots name and price at checkout time.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID uint            `gorm:"index;not null"`
	ItemName  string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
	CreatedAt time.Time
}
