package sales

import (
	"context"

	"github.com/jeyostore/pos-api/internal/domain/entity"
	"github.com/jeyostore/pos-api/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction, passing
// repositories bound to that transaction. The stock-consistency rule relies
// on it: the ledger write and the stock change either both commit or
// neither does.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptPDFGenerator renders a printable receipt for a completed sale.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale) ([]byte, error)
}
