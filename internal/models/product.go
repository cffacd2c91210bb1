package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uuid.UUID           `json:"id"`
	CategoryID      uuid.UUID           `json:"category_id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Price           decimal.Decimal     `json:"price"`
	DiscountedPrice decimal.NullDecimal `json:"discounted_price"`
	StockQuantity   int                 `json:"stock_quantity"`
	SKU             string              `json:"sku"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// SalePrice is the price a cart line snapshots: the discounted price when one is set.
func (p *Product) SalePrice() decimal.Decimal {
	if p.DiscountedPrice.Valid && p.DiscountedPrice.Decimal.LessThan(p.Price) {
		return p.DiscountedPrice.Decimal
	}

	return p.Price
}

type CreateProductRequest struct {
	CategoryID      uuid.UUID        `json:"category_id" validate:"required"`
	Name            string           `json:"name" validate:"required,min=3,max=200"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	StockQuantity   int              `json:"stock_quantity" validate:"gte=0"`
	SKU             string           `json:"sku" validate:"required,min=3,max=50"`
}

type UpdateProductRequest struct {
	CategoryID      *uuid.UUID       `json:"category_id,omitempty"`
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	StockQuantity   *int             `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	IsActive        *bool            `json:"is_active,omitempty"`
}
