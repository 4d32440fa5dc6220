package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string           `json:"name"     validate:"required,min=2,max=120"`
	Description *string          `json:"description"`
	Category    string           `json:"category" validate:"required"`
	Price       *decimal.Decimal `json:"price"    validate:"required,min=0"`
	Stock       int              `json:"stock"    validate:"min=0"`
	IsActive    *bool            `json:"is_active"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	IsActive    *bool            `json:"is_active"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name            string `form:"name"`
	Category        string `form:"category"`
	ServiceCenterID uint   `form:"service_center_id"`
	// Active filter: "false" = inactive, "all" = everything, default = active only
	Active string `form:"active"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID              uint            `json:"id"`
	ServiceCenterID uint            `json:"service_center_id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	ImageURL        *string         `json:"image_url"`
	IsActive        bool            `json:"is_active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
