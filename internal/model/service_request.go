package model

import "time"

// ServiceRequest status values (kept in Russian — they are the wire contract
// the SPA renders as-is). The requester may edit content fields only while
// the request is still "запрошена"; only the service center changes status.
const (
	RequestStatusNew        = "запрошена"
	RequestStatusInProgress = "в работе"
	RequestStatusDone       = "выполнена"
	RequestStatusCancelled  = "отменена"
)

type ServiceRequest struct {
	ID                 uint `gorm:"primaryKey"`
	UserID             uint `gorm:"index;not null"`
	ServiceCenterID    uint `gorm:"index;not null"`
	WorkshopServiceID  *uint
	BikeManufacturer   string `gorm:"not null"`
	BikeModel          string `gorm:"not null"`
	ProblemDescription string `gorm:"not null"`
	PreferredDate      *time.Time
	Status             string `gorm:"type:varchar(20);not null;default:'запрошена'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	WorkshopService *WorkshopService `gorm:"foreignKey:WorkshopServiceID"`
	User            *User            `gorm:"foreignKey:UserID"`
}
