package model

import "time"

// User is a bicycle owner — the buying side of the marketplace.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
