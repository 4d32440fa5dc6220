package model

import "time"

// ServiceCenter is a repair workshop — the selling side and the tenant
// boundary for products, components, workshop services, price lists and
// warranties.
type ServiceCenter struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"index;not null"`
	Description  *string
	Address      string `gorm:"not null"`
	Phone        *string
	LogoURL      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
