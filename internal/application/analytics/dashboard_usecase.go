// Package analytics contains the read-side use cases for the dashboard.
// All arithmetic lives in the pure report package; this layer only loads
// snapshots and shapes DTOs.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jeyostore/pos-api/internal/application/dto"
	"github.com/jeyostore/pos-api/internal/domain"
	"github.com/jeyostore/pos-api/internal/domain/entity"
	"github.com/jeyostore/pos-api/internal/domain/report"
	"github.com/jeyostore/pos-api/internal/domain/repository"
)

const opTimeout = 5 * time.Second

// DashboardUseCase builds the dashboard summary and the revenue charts.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, saleRepo: saleRepo}
}

// GetSummary folds the full catalog and ledger snapshot into the dashboard
// KPIs. The metric selects the top-sellers ranking ("qty" or "revenue").
//
// The two snapshot loads run in parallel.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, metric string) (*dto.DashboardSummaryDTO, error) {
	switch metric {
	case "", report.MetricQty, report.MetricRevenue:
	default:
		return nil, domain.ErrInvalidInput
	}
	if metric == "" {
		metric = report.MetricQty
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}

	productsCh := make(chan productsResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		products, err := uc.productRepo.List(ctx, true)
		productsCh <- productsResult{products, err}
	}()
	go func() {
		sales, err := uc.saleRepo.List(ctx, repository.SaleFilter{})
		salesCh <- salesResult{sales, err}
	}()

	p := <-productsCh
	s := <-salesCh

	if p.err != nil {
		return nil, fmt.Errorf("dashboard: load products: %w", p.err)
	}
	if s.err != nil {
		return nil, fmt.Errorf("dashboard: load sales: %w", s.err)
	}

	top := report.TopProducts(s.sales, metric, report.TopN)
	topDTO := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		topDTO = append(topDTO, dto.TopProductDTO{
			ProductName:  t.Name,
			QuantitySold: t.Qty,
			TotalRevenue: t.Revenue,
		})
	}

	low := report.LowStock(p.products)
	lowDTO := make([]dto.ProductResponse, 0, len(low))
	for _, lp := range low {
		lowDTO = append(lowDTO, dto.ProductResponse{
			ID:       lp.ID,
			Name:     lp.Name,
			Category: lp.Category,
			Price:    lp.Price,
			Stock:    lp.Stock,
			IsHidden: lp.IsHidden,
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts: len(p.products),
		TotalStock:    report.TotalStock(p.products),
		TotalRevenue:  report.TotalRevenue(s.sales),
		TotalSales:    len(s.sales),
		TopProducts:   topDTO,
		LowStock:      lowDTO,
	}, nil
}

// GetRevenueChart buckets the ledger for the requested window: hours for
// today, weekdays for the last 7 days, days for this month, months for
// this year. Buckets come back zero-filled in calendar order.
func (uc *DashboardUseCase) GetRevenueChart(ctx context.Context, window string) (*dto.RevenueChartDTO, error) {
	w := report.Window(window)
	switch w {
	case report.WindowToday, report.Window7Days, report.WindowMonth, report.WindowYear:
	default:
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now()
	start := report.WindowStart(w, now)
	sales, err := uc.saleRepo.List(ctx, repository.SaleFilter{Since: &start})
	if err != nil {
		return nil, fmt.Errorf("dashboard: load sales window: %w", err)
	}

	buckets := report.Buckets(sales, w, now)
	out := &dto.RevenueChartDTO{Window: string(w), Buckets: make([]dto.RevenueBucketDTO, 0, len(buckets))}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, dto.RevenueBucketDTO{
			Label:   b.Label,
			Qty:     b.Qty,
			Revenue: b.Revenue,
		})
	}
	return out, nil
}
