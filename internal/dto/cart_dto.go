package dto

import "github.com/shopspring/decimal"

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type CartItemResponse struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	ID uint `json:"id"`
	// ServiceCenterID is derived from the items; nil for an empty cart.
	ServiceCenterID *uint              `json:"service_center_id"`
	Items           []CartItemResponse `json:"items"`
	Total           decimal.Decimal    `json:"total"`
}
