package model

import "time"

// Review is a user's rating of a service center. One review per
// (user, service center) pair.
type Review struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"not null;uniqueIndex:idx_review_user_center"`
	ServiceCenterID uint `gorm:"not null;uniqueIndex:idx_review_user_center"`
	Rating          int  `gorm:"not null"`
	Comment         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User *User `gorm:"foreignKey:UserID"`
}
