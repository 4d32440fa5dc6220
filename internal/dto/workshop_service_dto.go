package dto

import "github.com/shopspring/decimal"

// ComponentUsageInput is one component consumed by a workshop service.
type ComponentUsageInput struct {
	ComponentID uint   `json:"component_id" validate:"required"`
	Quantity    int    `json:"quantity"     validate:"required,gt=0"`
	Unit        string `json:"unit"`
}

type CreateWorkshopServiceRequest struct {
	Name            string           `json:"name" validate:"required,min=2,max=120"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	BasePrice       *decimal.Decimal `json:"base_price" validate:"required,min=0"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,gt=0"`
	IsActive        *bool            `json:"is_active"`
	// nil — no usages; empty slice — explicitly none
	ComponentUsages *[]ComponentUsageInput `json:"component_usages" validate:"omitempty,dive"`
}

type UpdateWorkshopServiceRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	BasePrice       *decimal.Decimal `json:"base_price"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,gt=0"`
	IsActive        *bool            `json:"is_active"`
	// nil leaves existing usages untouched; empty slice deletes them all
	ComponentUsages *[]ComponentUsageInput `json:"component_usages" validate:"omitempty,dive"`
}

type WorkshopServiceFilter struct {
	Name            string `form:"name"`
	Category        string `form:"category"`
	ServiceCenterID uint   `form:"service_center_id"`
	Active          string `form:"active"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ComponentUsageResponse struct {
	ID            uint   `json:"id"`
	ComponentID   uint   `json:"component_id"`
	ComponentName string `json:"component_name"`
	Quantity      int    `json:"quantity"`
	Unit          string `json:"unit"`
}

type WorkshopServiceResponse struct {
	ID              uint                     `json:"id"`
	ServiceCenterID uint                     `json:"service_center_id"`
	Name            string                   `json:"name"`
	Description     *string                  `json:"description"`
	Category        *string                  `json:"category"`
	BasePrice       decimal.Decimal          `json:"base_price"`
	DurationMinutes *int                     `json:"duration_minutes"`
	IsActive        bool                     `json:"is_active"`
	ComponentUsages []ComponentUsageResponse `json:"component_usages"`
}

type WorkshopServiceListResponse struct {
	Data  []WorkshopServiceResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}
