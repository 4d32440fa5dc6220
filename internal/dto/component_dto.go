package dto

import "github.com/shopspring/decimal"

type CreateComponentRequest struct {
	Name                    string           `json:"name"         validate:"required,min=2,max=120"`
	Manufacturer            string           `json:"manufacturer" validate:"required"`
	Supplier                *string          `json:"supplier"`
	PartNumber              *string          `json:"part_number"`
	CompatibleManufacturers []string         `json:"compatible_manufacturers"`
	CompatibleModels        []string         `json:"compatible_models"`
	Stock                   int              `json:"stock"      validate:"min=0"`
	Unit                    string           `json:"unit"`
	UnitPrice               *decimal.Decimal `json:"unit_price" validate:"required,min=0"`
	IsActive                *bool            `json:"is_active"`
}

type UpdateComponentRequest struct {
	Name                    *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Manufacturer            *string          `json:"manufacturer"`
	Supplier                *string          `json:"supplier"`
	PartNumber              *string          `json:"part_number"`
	CompatibleManufacturers *[]string        `json:"compatible_manufacturers"`
	CompatibleModels        *[]string        `json:"compatible_models"`
	Stock                   *int             `json:"stock" validate:"omitempty,min=0"`
	Unit                    *string          `json:"unit"`
	UnitPrice               *decimal.Decimal `json:"unit_price"`
	IsActive                *bool            `json:"is_active"`
}

type ComponentFilter struct {
	Name         string `form:"name"`
	Manufacturer string `form:"manufacturer"`
	Active       string `form:"active"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ComponentResponse struct {
	ID                      uint            `json:"id"`
	ServiceCenterID         uint            `json:"service_center_id"`
	Name                    string          `json:"name"`
	Manufacturer            string          `json:"manufacturer"`
	Supplier                *string         `json:"supplier"`
	PartNumber              *string         `json:"part_number"`
	CompatibleManufacturers []string        `json:"compatible_manufacturers"`
	CompatibleModels        []string        `json:"compatible_models"`
	Stock                   int             `json:"stock"`
	Unit                    string          `json:"unit"`
	UnitPrice               decimal.Decimal `json:"unit_price"`
	IsActive                bool            `json:"is_active"`
}

type ComponentListResponse struct {
	Data  []ComponentResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
