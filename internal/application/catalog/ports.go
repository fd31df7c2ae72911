package catalog

import (
	"context"

	"github.com/jeyostore/pos-api/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction with
// tx-bound repositories. The catalog needs it only for the destructive
// cascade (purge), where the product and its ledger entries go together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
