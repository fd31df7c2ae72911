// Package catalog implements product management: creation, edits,
// visibility, manual stock additions and the two deletion policies
// (snapshot-preserving by default, destructive cascade as a separately
// named, audited operation).
package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jeyostore/pos-api/internal/application/dto"
	"github.com/jeyostore/pos-api/internal/domain"
	"github.com/jeyostore/pos-api/internal/domain/entity"
	"github.com/jeyostore/pos-api/internal/domain/repository"
	"github.com/jeyostore/pos-api/pkg/logger"
)

const opTimeout = 5 * time.Second

// CatalogUseCase product catalog use cases.
type CatalogUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(txRunner TxRunner, productRepo repository.ProductRepository, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner, productRepo: productRepo, log: log}
}

// Create validates and persists a new product. The category is lower-cased
// at write time so grouping stays consistent; display layers re-capitalize.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validPrice(in.Price); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  normalizeCategory(in.Category),
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID loads a single product.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List returns the catalog ordered by name. Hidden products are included
// only on request (admin surfaces).
func (uc *CatalogUseCase) List(ctx context.Context, includeHidden bool) (*dto.ProductListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	products, err := uc.productRepo.List(ctx, includeHidden)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products)), Total: len(products)}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Update edits catalog fields. A stock value here is the sanctioned manual
// edit; it does not touch the ledger.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == nil && in.Category == nil && in.Price == nil && in.Stock == nil {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = normalizeCategory(*in.Category)
	}
	if in.Price != nil {
		if err := validPrice(*in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SetVisibility hides a product from the public price list and the sale
// picker, or brings it back, without deleting anything.
func (uc *CatalogUseCase) SetVisibility(ctx context.Context, id string, hidden bool) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return uc.productRepo.SetHidden(ctx, id, hidden)
}

// AddStock applies a trusted manual correction: stock += qty, with the
// last-addition audit fields stamped by the server clock. Independent of
// the ledger; it carries no reversal semantics.
func (uc *CatalogUseCase) AddStock(ctx context.Context, id string, qty int64) (*dto.ProductResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := uc.productRepo.AddStock(ctx, id, qty); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Delete removes the product only. Ledger entries keep their denormalized
// snapshots, so sale history survives (default policy).
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return uc.productRepo.Delete(ctx, id)
}

// Purge is the destructive cascade: the product and every sale referencing
// it are removed in one transaction, with no stock restoration and no
// surviving history. Always audited through the structured log.
func (uc *CatalogUseCase) Purge(ctx context.Context, id, actorID string) (*dto.PurgeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var deleted int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		deleted, err = saleRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Warn().
		Str("product_id", id).
		Str("actor_id", actorID).
		Int64("sales_deleted", deleted).
		Msg("product purged with sale history")

	return &dto.PurgeResponse{ProductID: id, SalesDeleted: deleted}, nil
}

// PriceList builds the public read-only price list: visible products only,
// optional keyword filter, optional price sort ("asc"/"desc").
func (uc *CatalogUseCase) PriceList(ctx context.Context, keyword, sortOrder string) (*dto.PriceListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	products, err := uc.productRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	out := &dto.PriceListResponse{Items: make([]dto.PriceListItem, 0, len(products))}
	for _, p := range products {
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), keyword) {
			continue
		}
		out.Items = append(out.Items, dto.PriceListItem{
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
		})
	}

	switch sortOrder {
	case "asc":
		sort.SliceStable(out.Items, func(i, j int) bool {
			return out.Items[i].Price.LessThan(out.Items[j].Price)
		})
	case "desc":
		sort.SliceStable(out.Items, func(i, j int) bool {
			return out.Items[j].Price.LessThan(out.Items[i].Price)
		})
	}
	return out, nil
}

func validPrice(p decimal.Decimal) error {
	// Prices are whole Rupiah amounts; negative or fractional values are
	// rejected before any network call.
	if p.IsNegative() || !p.IsInteger() {
		return domain.ErrInvalidInput
	}
	return nil
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		Price:             p.Price,
		Stock:             p.Stock,
		IsHidden:          p.IsHidden,
		CreatedAt:         p.CreatedAt,
		LastStockAddedAt:  p.LastStockAddedAt,
		LastStockAddedQty: p.LastStockAddedQty,
	}
}
