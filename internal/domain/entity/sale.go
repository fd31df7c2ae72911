package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer types recorded on a sale.
const (
	CustomerTypeRetail   = "retail"
	CustomerTypeReseller = "reseller"
)

// Sale is a ledger entry. ProductName, ProductCategory and Price are
// snapshots taken at sale time so the entry stays meaningful after the
// product is edited, hidden or deleted. Qty and ProductID are immutable
// after creation; only display fields may be corrected later.
type Sale struct {
	ID              string
	ProductID       string // may dangle once the product is deleted
	ProductName     string
	ProductCategory string
	Qty             int64
	Price           decimal.Decimal // unit price at sale time
	BuyerName       string
	CustomerType    string
	SoldAt          time.Time // server-assigned by the database clock
}

// Total is the revenue contribution of this sale (qty x unit price snapshot).
func (s *Sale) Total() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(s.Qty))
}
