package dto

import "time"

type CreateWarrantyRequest struct {
	ServiceRequestID *uint     `json:"service_request_id"`
	CustomerName     string    `json:"customer_name"     validate:"required"`
	BikeManufacturer string    `json:"bike_manufacturer" validate:"required"`
	BikeModel        string    `json:"bike_model"        validate:"required"`
	StartDate        time.Time `json:"start_date"        validate:"required"`
	EndDate          time.Time `json:"end_date"          validate:"required"`
	Terms            *string   `json:"terms"`
}

type UpdateWarrantyRequest struct {
	CustomerName     *string    `json:"customer_name"`
	BikeManufacturer *string    `json:"bike_manufacturer"`
	BikeModel        *string    `json:"bike_model"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Terms            *string    `json:"terms"`
	Status           *string    `json:"status" validate:"omitempty,oneof=active expired void"`
}

type WarrantyFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=active expired void"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type WarrantyResponse struct {
	ID               uint      `json:"id"`
	ServiceCenterID  uint      `json:"service_center_id"`
	ServiceRequestID *uint     `json:"service_request_id"`
	CustomerName     string    `json:"customer_name"`
	BikeManufacturer string    `json:"bike_manufacturer"`
	BikeModel        string    `json:"bike_model"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Terms            *string   `json:"terms"`
	Status           string    `json:"status"`
	HasCertificate   bool      `json:"has_certificate"`
}

type WarrantyListResponse struct {
	Data  []WarrantyResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
