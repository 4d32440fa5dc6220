package model

import "time"

// Warranty status values. Freely settable by the owning service center —
// expiry is descriptive, there is no automatic transition based on EndDate.
const (
	WarrantyStatusActive  = "active"
	WarrantyStatusExpired = "expired"
	WarrantyStatusVoid    = "void"
)

// RepairWarranty documents a guarantee a service center issued for a repair.
type RepairWarranty struct {
	ID               uint `gorm:"primaryKey"`
	ServiceCenterID  uint `gorm:"index;not null"`
	ServiceRequestID *uint
	CustomerName     string    `gorm:"not null"`
	BikeManufacturer string    `gorm:"not null"`
	BikeModel        string    `gorm:"not null"`
	StartDate        time.Time `gorm:"not null"`
	EndDate          time.Time `gorm:"not null"`
	Terms            *string
	Status           string `gorm:"type:varchar(20);not null;default:'active'"`
	// CertificatePath is set by the certificate worker once the PDF is rendered.
	CertificatePath *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
