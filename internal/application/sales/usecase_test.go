package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeyostore/pos-api/internal/application/dto"
	"github.com/jeyostore/pos-api/internal/application/sales"
	"github.com/jeyostore/pos-api/internal/domain"
	"github.com/jeyostore/pos-api/internal/domain/entity"
	"github.com/jeyostore/pos-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes for the repository ports
// ─────────────────────────────────────────────────────────────────────────────

// fakeStore backs both repositories so the fakes see the same state, the
// way tx-bound repositories share one connection.
type fakeStore struct {
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
	order    []string // sale ids in insertion order
	clock    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
		clock:    time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) liveSales() []*entity.Sale {
	out := make([]*entity.Sale, 0, len(s.sales))
	for _, id := range s.order {
		if sale, ok := s.sales[id]; ok {
			out = append(out, sale)
		}
	}
	return out
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) List(_ context.Context, includeHidden bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsHidden && !includeHidden {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SetHidden(_ context.Context, id string, hidden bool) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.IsHidden = hidden
	return nil
}

func (r *fakeProductRepo) AddStock(_ context.Context, id string, qty int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	now := r.s.tick()
	p.Stock += qty
	p.LastStockAddedAt = &now
	p.LastStockAddedQty = qty
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, qty int64) error {
	p, ok := r.s.products[id]
	if !ok || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id string, qty int64) (bool, error) {
	p, ok := r.s.products[id]
	if !ok {
		return false, nil
	}
	p.Stock += qty
	return true, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	sale.SoldAt = r.s.tick() // store-assigned clock, monotonic per write
	cp := *sale
	r.s.sales[sale.ID] = &cp
	r.s.order = append(r.s.order, sale.ID)
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.liveSales() {
		if filter.Since != nil && sale.SoldAt.Before(*filter.Since) {
			continue
		}
		if filter.CustomerType != "" && sale.CustomerType != filter.CustomerType {
			continue
		}
		if filter.Category != "" && sale.ProductCategory != filter.Category {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateDisplayFields(_ context.Context, id string, buyerName, customerType, category *string) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrSaleNotFound
	}
	if buyerName != nil {
		sale.BuyerName = *buyerName
	}
	if customerType != nil {
		sale.CustomerType = *customerType
	}
	if category != nil {
		sale.ProductCategory = *category
	}
	return nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(r.s.sales, id)
	return nil
}

func (r *fakeSaleRepo) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	for id, sale := range r.s.sales {
		if sale.ProductID == productID {
			delete(r.s.sales, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeSaleRepo) SumByProduct(_ context.Context) ([]repository.ProductSaleTotal, error) {
	byProduct := make(map[string]*repository.ProductSaleTotal)
	var order []string
	for _, sale := range r.s.liveSales() {
		t, ok := byProduct[sale.ProductID]
		if !ok {
			t = &repository.ProductSaleTotal{ProductID: sale.ProductID}
			byProduct[sale.ProductID] = t
			order = append(order, sale.ProductID)
		}
		t.SaleCount++
		t.TotalQty += sale.Qty
	}
	out := make([]repository.ProductSaleTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *byProduct[id])
	}
	return out, nil
}

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return fn(&fakeProductRepo{s: r.s}, &fakeSaleRepo{s: r.s})
}

func newUseCase(s *fakeStore) *sales.SaleUseCase {
	return sales.NewSaleUseCase(&fakeTxRunner{s: s}, &fakeProductRepo{s: s}, &fakeSaleRepo{s: s})
}

func seedProduct(s *fakeStore, id, name string, stock int64, price int64) {
	s.products[id] = &entity.Product{
		ID:        id,
		Name:      name,
		Category:  "snack",
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
		CreatedAt: s.clock,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// RecordSale
// ─────────────────────────────────────────────────────────────────────────────

// Scenario: {stock: 50, price: 10000}, sell 5 -> stock 45, sale carries the
// price snapshot, revenue contribution 50000.
func TestRecordSale_BasicSale(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Mie Lidi Pedas", 50, 10000)
	uc := newUseCase(s)

	out, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		ProductID: "p1",
		Qty:       5,
		BuyerName: "  Budi ",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, int64(45), s.products["p1"].Stock)
	assert.Equal(t, int64(5), out.Qty)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(10000)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "Mie Lidi Pedas", out.ProductName)
	assert.Equal(t, "Budi", out.BuyerName, "buyer name is trimmed")
	assert.Equal(t, entity.CustomerTypeRetail, out.CustomerType, "customer type defaults to retail")
	assert.False(t, out.SoldAt.IsZero(), "soldAt comes from the store clock")
	assert.Len(t, s.sales, 1)
}

// Scenario: {stock: 3}, sell 5 -> ErrInsufficientStock, stock untouched,
// no sale created.
func TestRecordSale_InsufficientStock(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Keripik", 3, 7000)
	uc := newUseCase(s)

	out, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, out)
	assert.Equal(t, int64(3), s.products["p1"].Stock)
	assert.Empty(t, s.sales)
}

func TestRecordSale_ProductNotFound(t *testing.T) {
	uc := newUseCase(newFakeStore())

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "missing", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRecordSale_HiddenProductNotSellable(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Rahasia", 10, 5000)
	s.products["p1"].IsHidden = true
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrProductHidden)
	assert.Equal(t, int64(10), s.products["p1"].Stock)
}

func TestRecordSale_RejectsNonPositiveQty(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "A", 10, 5000)
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: -4})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Snapshot fields must reflect the product at sale time, not later edits.
func TestRecordSale_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Mie Lidi Asin", 20, 5000)
	uc := newUseCase(s)

	out, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: 2})
	require.NoError(t, err)

	// Price doubles after the sale.
	s.products["p1"].Price = decimal.NewFromInt(10000)

	sale, err := uc.GetSale(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, sale.Price.Equal(decimal.NewFromInt(5000)), "historical price stays snapshotted")
	assert.True(t, sale.Total().Equal(decimal.NewFromInt(10000)))
}

// ─────────────────────────────────────────────────────────────────────────────
// ReverseSale
// ─────────────────────────────────────────────────────────────────────────────

// Reversal symmetry: record then immediately reverse restores the exact
// starting stock.
func TestReverseSale_RestoresStock(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Balado", 12, 5000)
	uc := newUseCase(s)

	out, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: 7})
	require.NoError(t, err)
	require.Equal(t, int64(5), s.products["p1"].Stock)

	require.NoError(t, uc.ReverseSale(context.Background(), out.ID))
	assert.Equal(t, int64(12), s.products["p1"].Stock)
	assert.Empty(t, s.sales, "reversed sale leaves the ledger")
}

// Scenario: the product is deleted before the reversal. The sale is removed
// without error and no stock is mutated anywhere.
func TestReverseSale_AfterProductDeletion(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Sementara", 10, 4000)
	seedProduct(s, "p2", "Lain", 8, 3000)
	uc := newUseCase(s)

	out, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: 4})
	require.NoError(t, err)

	delete(s.products, "p1")

	require.NoError(t, uc.ReverseSale(context.Background(), out.ID))
	assert.Empty(t, s.sales)
	assert.Equal(t, int64(8), s.products["p2"].Stock, "unrelated product untouched")
}

func TestReverseSale_NotFound(t *testing.T) {
	uc := newUseCase(newFakeStore())
	assert.ErrorIs(t, uc.ReverseSale(context.Background(), "nope"), domain.ErrSaleNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Stock invariant
// ─────────────────────────────────────────────────────────────────────────────

// For any sequence of record/reverse calls that respects the precondition,
// final stock == S0 - sum(qty of live sales).
func TestStockInvariant_MixedSequence(t *testing.T) {
	s := newFakeStore()
	const s0 = int64(100)
	seedProduct(s, "p1", "Pedas", s0, 10000)
	uc := newUseCase(s)

	ctx := context.Background()
	var saleIDs []string
	for _, qty := range []int64{5, 10, 3, 20, 1} {
		out, err := uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "p1", Qty: qty})
		require.NoError(t, err)
		saleIDs = append(saleIDs, out.ID)
	}
	// Reverse the 2nd and 4th sales out of order.
	require.NoError(t, uc.ReverseSale(ctx, saleIDs[3]))
	require.NoError(t, uc.ReverseSale(ctx, saleIDs[1]))
	// One more sale after the reversals.
	_, err := uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "p1", Qty: 8})
	require.NoError(t, err)

	var liveQty int64
	for _, sale := range s.sales {
		liveQty += sale.Qty
	}
	assert.Equal(t, int64(5+3+1+8), liveQty)
	assert.Equal(t, s0-liveQty, s.products["p1"].Stock)
}

// A rejected sale must not shift the invariant.
func TestStockInvariant_RejectionLeavesStateUntouched(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Asin", 6, 5000)
	uc := newUseCase(s)

	ctx := context.Background()
	_, err := uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "p1", Qty: 4})
	require.NoError(t, err)

	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "p1", Qty: 3})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(2), s.products["p1"].Stock)
	assert.Len(t, s.sales, 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateSale / List / DriftReport
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_DisplayFieldsOnly(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Pedas", 10, 5000)
	uc := newUseCase(s)

	out, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p1", Qty: 2})
	require.NoError(t, err)

	buyer := "Siti"
	category := " Camilan "
	updated, err := uc.UpdateSale(context.Background(), out.ID, dto.UpdateSaleRequest{
		BuyerName:       &buyer,
		ProductCategory: &category,
	})
	require.NoError(t, err)
	assert.Equal(t, "Siti", updated.BuyerName)
	assert.Equal(t, "camilan", updated.ProductCategory, "category is normalized")
	assert.Equal(t, int64(2), updated.Qty, "qty is immutable")
	assert.True(t, updated.Price.Equal(out.Price), "price snapshot is immutable")
}

func TestUpdateSale_RejectsEmptyAndBadInput(t *testing.T) {
	uc := newUseCase(newFakeStore())

	_, err := uc.UpdateSale(context.Background(), "s1", dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := "wholesale"
	_, err = uc.UpdateSale(context.Background(), "s1", dto.UpdateSaleRequest{CustomerType: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltersByCustomerType(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Pedas", 50, 5000)
	uc := newUseCase(s)

	ctx := context.Background()
	_, err := uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "p1", Qty: 1, CustomerType: entity.CustomerTypeRetail})
	require.NoError(t, err)
	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "p1", Qty: 2, CustomerType: entity.CustomerTypeReseller})
	require.NoError(t, err)

	out, err := uc.List(ctx, "", entity.CustomerTypeReseller, "")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, int64(2), out.Items[0].Qty)
}

func TestDriftReport_FlagsNegativeStock(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "Sehat", 10, 5000)
	seedProduct(s, "p2", "Rusak", 10, 5000)
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "p2", Qty: 3})
	require.NoError(t, err)
	// Simulated drift from a writer that bypassed the sanctioned paths.
	s.products["p2"].Stock = -2

	out, err := uc.DriftReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Suspect)

	var rusak *dto.DriftEntry
	for i := range out.Entries {
		if out.Entries[i].ProductID == "p2" {
			rusak = &out.Entries[i]
		}
	}
	require.NotNil(t, rusak)
	assert.True(t, rusak.Negative)
	assert.Equal(t, int64(3), rusak.LiveSaleQty)
	assert.Equal(t, int64(1), rusak.SaleCount)
}
