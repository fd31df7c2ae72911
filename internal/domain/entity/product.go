package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item with its current stock, price and visibility.
// Stock must only change through the sanctioned paths: catalog edit,
// RecordSale/ReverseSale, or a manual stock addition.
type Product struct {
	ID               string
	Name             string
	Category         string // lower-cased at write time for consistent grouping
	Price            decimal.Decimal
	Stock            int64
	IsHidden         bool // hidden from the public price list and the sale picker
	CreatedAt        time.Time
	LastStockAddedAt *time.Time // most recent manual addition only, not a history
	LastStockAddedQty int64
}
