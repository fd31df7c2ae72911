package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO response of GET /api/dashboard/summary.
// KPIs over the full catalog and ledger snapshot, plus the top-5 sellers
// and the low-stock widget.
type DashboardSummaryDTO struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    int64           `json:"total_stock"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalSales    int             `json:"total_sales"`

	// Top 5 product names by the requested metric (qty by default).
	TopProducts []TopProductDTO `json:"top_products"`

	// Products at or below the fixed low-stock threshold.
	LowStock []ProductResponse `json:"low_stock"`
}

// TopProductDTO is one row of the top-sellers widget. Grouped by the
// product-name snapshot on the ledger, so renamed or deleted products
// still rank correctly.
type TopProductDTO struct {
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// RevenueBucketDTO is one calendar slot of the revenue chart.
type RevenueBucketDTO struct {
	Label   string          `json:"label"`
	Qty     int64           `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueChartDTO response of GET /api/dashboard/revenue.
type RevenueChartDTO struct {
	Window  string             `json:"window"`
	Buckets []RevenueBucketDTO `json:"buckets"`
}
