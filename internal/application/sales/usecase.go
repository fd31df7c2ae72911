// Package sales implements the stock-consistency rule: RecordSale and
// ReverseSale are the only entry points allowed to change product stock as
// a side effect of a ledger event. Both run inside a single transaction
// with the product row locked, so the invariant
//
//	stock == initial + manual additions - live sale qty
//
// survives concurrent writers and partial failure.
package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeyostore/pos-api/internal/application/dto"
	"github.com/jeyostore/pos-api/internal/domain"
	"github.com/jeyostore/pos-api/internal/domain/entity"
	"github.com/jeyostore/pos-api/internal/domain/report"
	"github.com/jeyostore/pos-api/internal/domain/repository"
)

// opTimeout bounds every store round trip started by this use case.
const opTimeout = 5 * time.Second

// SaleUseCase records, corrects, lists and reverses ledger entries.
type SaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewSaleUseCase builds the use case.
func NewSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, productRepo: productRepo, saleRepo: saleRepo}
}

// RecordSale appends a ledger entry carrying price/name/category snapshots
// and decrements the product's stock, atomically. The product row is locked
// for the duration, so the qty <= stock check cannot race another writer.
//
// Errors: ErrInvalidInput (qty <= 0), ErrProductNotFound, ErrProductHidden
// (hidden products are not sellable), ErrInsufficientStock.
func (uc *SaleUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" || in.Qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	customerType := in.CustomerType
	if customerType == "" {
		customerType = entity.CustomerTypeRetail
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var created *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.IsHidden {
			return domain.ErrProductHidden
		}
		if in.Qty > product.Stock {
			return domain.ErrInsufficientStock
		}

		sale := &entity.Sale{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductCategory: product.Category,
			Qty:             in.Qty,
			Price:           product.Price,
			BuyerName:       strings.TrimSpace(in.BuyerName),
			CustomerType:    customerType,
		}
		// Create fills SoldAt from the database clock, never the client's.
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if err := productRepo.DecrementStock(ctx, product.ID, in.Qty); err != nil {
			return err
		}
		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(created), nil
}

// ReverseSale is the inverse of RecordSale: it credits the quantity back to
// the referenced product (when it still exists) and deletes the ledger
// entry, in one transaction. A deleted product means there is nothing to
// credit; the sale is still removed without error.
//
// Errors: ErrSaleNotFound.
func (uc *SaleUseCase) ReverseSale(ctx context.Context, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if _, err := productRepo.IncrementStock(ctx, sale.ProductID, sale.Qty); err != nil {
			return err
		}
		return saleRepo.Delete(ctx, sale.ID)
	})
}

// UpdateSale corrects denormalized display fields only. Qty, product
// reference, price snapshot and soldAt are immutable after creation.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BuyerName == nil && in.CustomerType == nil && in.ProductCategory == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerType != nil &&
		*in.CustomerType != entity.CustomerTypeRetail && *in.CustomerType != entity.CustomerTypeReseller {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductCategory != nil {
		lowered := strings.ToLower(strings.TrimSpace(*in.ProductCategory))
		in.ProductCategory = &lowered
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := uc.saleRepo.UpdateDisplayFields(ctx, saleID, in.BuyerName, in.CustomerType, in.ProductCategory); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return toSaleResponse(sale), nil
}

// GetSale loads a single ledger entry (receipt generation path).
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

// List returns ledger entries newest first, optionally bounded to a time
// window and filtered by customer type or category snapshot.
func (uc *SaleUseCase) List(ctx context.Context, window, customerType, category string) (*dto.SaleListResponse, error) {
	filter := repository.SaleFilter{
		CustomerType: customerType,
		Category:     strings.ToLower(strings.TrimSpace(category)),
	}
	if window != "" {
		start := report.WindowStart(report.Window(window), time.Now())
		filter.Since = &start
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	items, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(items)), Total: len(items)}
	for _, s := range items {
		out.Items = append(out.Items, *toSaleResponse(s))
	}
	return out, nil
}

// DriftReport is the documented detection procedure for the stock
// invariant: a read-only rollup of live ledger quantities per product next
// to the current stock. Negative stock is always suspect; everything else
// needs the operator's knowledge of initial stock and manual additions.
func (uc *SaleUseCase) DriftReport(ctx context.Context) (*dto.DriftReportResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	products, err := uc.productRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	totals, err := uc.saleRepo.SumByProduct(ctx)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]repository.ProductSaleTotal, len(totals))
	for _, t := range totals {
		byProduct[t.ProductID] = t
	}

	out := &dto.DriftReportResponse{GeneratedAt: time.Now(), Entries: make([]dto.DriftEntry, 0, len(products))}
	for _, p := range products {
		t := byProduct[p.ID]
		entry := dto.DriftEntry{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			LiveSaleQty: t.TotalQty,
			SaleCount:   t.SaleCount,
			Negative:    p.Stock < 0,
		}
		if entry.Negative {
			out.Suspect++
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:              s.ID,
		ProductID:       s.ProductID,
		ProductName:     s.ProductName,
		ProductCategory: s.ProductCategory,
		Qty:             s.Qty,
		Price:           s.Price,
		Total:           s.Total(),
		BuyerName:       s.BuyerName,
		CustomerType:    s.CustomerType,
		SoldAt:          s.SoldAt,
	}
}
