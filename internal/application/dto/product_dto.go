package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input for creating a catalog product.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"omitempty,max=100"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock" validate:"min=0"`
}

// UpdateProductRequest input for editing catalog fields. Nil pointers leave
// the field untouched. Editing Stock here is the sanctioned manual-edit path;
// sale-driven changes go through the ledger operations instead.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int64           `json:"stock" validate:"omitempty,min=0"`
}

// SetVisibilityRequest toggles a product on or off the public surfaces.
type SetVisibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// AddStockRequest input for a manual stock addition.
type AddStockRequest struct {
	Qty int64 `json:"qty" validate:"required,min=1"`
}

// ProductResponse output of a catalog product.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Stock             int64           `json:"stock"`
	IsHidden          bool            `json:"is_hidden"`
	CreatedAt         time.Time       `json:"created_at"`
	LastStockAddedAt  *time.Time      `json:"last_stock_added_at,omitempty"`
	LastStockAddedQty int64           `json:"last_stock_added_qty,omitempty"`
}

// ProductListResponse list of catalog products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// PurgeResponse outcome of the destructive cascade delete.
type PurgeResponse struct {
	ProductID    string `json:"product_id"`
	SalesDeleted int64  `json:"sales_deleted"`
}

// PriceListItem is one public price-list row (no stock, no audit fields).
type PriceListItem struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// PriceListResponse is the public read-only price list.
type PriceListResponse struct {
	Items []PriceListItem `json:"items"`
}
