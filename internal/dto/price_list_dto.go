package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceListItemInput is one raw item specification. Per-item rules (allowed
// item types, required fields per type, numeric ranges) are checked by the
// reference resolver so every failure carries a message naming the offender.
type PriceListItemInput struct {
	ItemType        string           `json:"item_type"`
	ReferenceID     *uint            `json:"reference_id"`
	ItemName        *string          `json:"item_name"`
	Description     *string          `json:"description"`
	Unit            *string          `json:"unit"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DurationMinutes *int             `json:"duration_minutes"`
	WarrantyMonths  *int             `json:"warranty_months"`
	IsActive        *bool            `json:"is_active"`
}

type CreatePriceListRequest struct {
	Name          string                `json:"name"      validate:"required,min=2,max=120"`
	Description   *string               `json:"description"`
	ListType      string                `json:"list_type" validate:"required,oneof=services components products combined"`
	EffectiveFrom *time.Time            `json:"effective_from"`
	EffectiveTo   *time.Time            `json:"effective_to"`
	IsDefault     bool                  `json:"is_default"`
	Items         *[]PriceListItemInput `json:"items"`
}

type UpdatePriceListRequest struct {
	Name          *string    `json:"name"      validate:"omitempty,min=2,max=120"`
	Description   *string    `json:"description"`
	ListType      *string    `json:"list_type" validate:"omitempty,oneof=services components products combined"`
	EffectiveFrom *time.Time `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
	IsDefault     *bool      `json:"is_default"`
	// nil leaves existing items untouched; empty slice deletes them all
	Items *[]PriceListItemInput `json:"items"`
}

type PriceListFilter struct {
	ListType string `form:"list_type" validate:"omitempty,oneof=services components products combined"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type PriceListItemResponse struct {
	ID              uint            `json:"id"`
	ItemType        string          `json:"item_type"`
	ReferenceID     *uint           `json:"reference_id"`
	ItemName        string          `json:"item_name"`
	Description     *string         `json:"description"`
	Unit            *string         `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DurationMinutes *int            `json:"duration_minutes"`
	WarrantyMonths  *int            `json:"warranty_months"`
	IsActive        bool            `json:"is_active"`
}

type PriceListResponse struct {
	ID              uint                    `json:"id"`
	ServiceCenterID uint                    `json:"service_center_id"`
	Name            string                  `json:"name"`
	Description     *string                 `json:"description"`
	ListType        string                  `json:"list_type"`
	EffectiveFrom   *time.Time              `json:"effective_from"`
	EffectiveTo     *time.Time              `json:"effective_to"`
	IsDefault       bool                    `json:"is_default"`
	Items           []PriceListItemResponse `json:"items"`
}

type PriceListListResponse struct {
	Data  []PriceListResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
