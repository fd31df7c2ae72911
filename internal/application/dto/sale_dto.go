package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest input for recording a sale against the catalog.
type RecordSaleRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Qty          int64  `json:"qty" validate:"required,min=1"`
	BuyerName    string `json:"buyer_name" validate:"omitempty,max=200"`
	CustomerType string `json:"customer_type" validate:"omitempty,oneof=retail reseller"`
}

// UpdateSaleRequest corrects denormalized display fields on a ledger entry.
// Qty, product reference, price snapshot and soldAt are immutable.
type UpdateSaleRequest struct {
	BuyerName       *string `json:"buyer_name" validate:"omitempty,max=200"`
	CustomerType    *string `json:"customer_type" validate:"omitempty,oneof=retail reseller"`
	ProductCategory *string `json:"product_category" validate:"omitempty,max=100"`
}

// SaleResponse output of a ledger entry.
type SaleResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductCategory string          `json:"product_category"`
	Qty             int64           `json:"qty"`
	Price           decimal.Decimal `json:"price"`
	Total           decimal.Decimal `json:"total"`
	BuyerName       string          `json:"buyer_name"`
	CustomerType    string          `json:"customer_type"`
	SoldAt          time.Time       `json:"sold_at"`
}

// SaleListResponse list of ledger entries, newest first.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}

// ReceiptResponse is the formatted receipt for a completed sale plus the
// messaging deep link to send it with.
type ReceiptResponse struct {
	SaleID       string `json:"sale_id"`
	Message      string `json:"message"`
	WhatsAppLink string `json:"whatsapp_link"`
}

// DriftEntry is one row of the stock-drift report.
type DriftEntry struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int64  `json:"stock"`
	LiveSaleQty int64  `json:"live_sale_qty"`
	SaleCount   int64  `json:"sale_count"`
	Negative    bool   `json:"negative"`
}

// DriftReportResponse is the read-only stock-consistency report.
type DriftReportResponse struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Entries     []DriftEntry `json:"entries"`
	Suspect     int          `json:"suspect"`
}
