package dto

import "time"

type CreateServiceRequestRequest struct {
	ServiceCenterID    uint       `json:"service_center_id"   validate:"required"`
	WorkshopServiceID  *uint      `json:"workshop_service_id"`
	BikeManufacturer   string     `json:"bike_manufacturer"   validate:"required"`
	BikeModel          string     `json:"bike_model"          validate:"required"`
	ProblemDescription string     `json:"problem_description" validate:"required"`
	PreferredDate      *time.Time `json:"preferred_date"`
}

// UpdateServiceRequestRequest carries content fields only — the requester may
// change them while the request is still in its initial status.
type UpdateServiceRequestRequest struct {
	WorkshopServiceID  *uint      `json:"workshop_service_id"`
	BikeManufacturer   *string    `json:"bike_manufacturer"`
	BikeModel          *string    `json:"bike_model"`
	ProblemDescription *string    `json:"problem_description"`
	PreferredDate      *time.Time `json:"preferred_date"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=запрошена 'в работе' выполнена отменена"`
}

type ServiceRequestFilter struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ServiceRequestResponse struct {
	ID                 uint       `json:"id"`
	UserID             uint       `json:"user_id"`
	ServiceCenterID    uint       `json:"service_center_id"`
	WorkshopServiceID  *uint      `json:"workshop_service_id"`
	WorkshopService    *string    `json:"workshop_service"`
	BikeManufacturer   string     `json:"bike_manufacturer"`
	BikeModel          string     `json:"bike_model"`
	ProblemDescription string     `json:"problem_description"`
	PreferredDate      *time.Time `json:"preferred_date"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
}

type ServiceRequestListResponse struct {
	Data  []ServiceRequestResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}
