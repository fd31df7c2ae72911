package repository

import (
	"context"
	"time"

	"github.com/jeyostore/pos-api/internal/domain/entity"
)

// SaleFilter narrows ledger queries. Zero values mean "no filter".
type SaleFilter struct {
	Since        *time.Time // soldAt >= Since
	CustomerType string
	Category     string
}

// ProductSaleTotal is a per-product ledger rollup used by the drift report.
type ProductSaleTotal struct {
	ProductID string
	SaleCount int64
	TotalQty  int64
}

// SaleRepository is the persistence port for the sales ledger (DIP).
// The ledger is append-mostly: Qty and ProductID are immutable after
// Create; only denormalized display fields may be corrected.
type SaleRepository interface {
	// Create inserts the sale and fills SoldAt from the database clock.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate reads the sale row under a row lock (reversal path).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// List returns sales ordered by soldAt descending.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	// UpdateDisplayFields corrects buyer name, customer type and the
	// category snapshot. Nil pointers leave the field untouched.
	UpdateDisplayFields(ctx context.Context, id string, buyerName, customerType, category *string) error
	Delete(ctx context.Context, id string) error
	// DeleteByProduct removes every sale referencing the product and
	// returns how many were removed (destructive cascade only).
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
	// SumByProduct rolls the live ledger up per product id.
	SumByProduct(ctx context.Context) ([]ProductSaleTotal, error)
}
