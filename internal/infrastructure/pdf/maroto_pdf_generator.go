// Package pdf renders a printable sales receipt with Maroto v2.
//
// A5 portrait layout:
//
//	┌───────────────────────────────┐
//	│  HEADER: store name + "Struk" │
//	│  ───────────────────────────  │
//	│  Produk / Jumlah / Harga      │
//	│  Pembeli / Tipe               │
//	│  ───────────────────────────  │
//	│  TOTAL                        │
//	│  Terima kasih                 │
//	└───────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jeyostore/pos-api/internal/application/receipt"
	"github.com/jeyostore/pos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 93}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implements sales.ReceiptPDFGenerator using Maroto v2.
type MarotoReceiptGenerator struct {
	formatter *receipt.Formatter
	storeName string
}

// NewMarotoReceiptGenerator builds the generator for one store.
func NewMarotoReceiptGenerator(formatter *receipt.Formatter, storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{formatter: formatter, storeName: storeName}
}

// GenerateReceiptPDF renders the sale receipt and returns its bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Struk Pembelian", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.detailRows(sale)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(sale))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Terima kasih telah berbelanja!", props.Text{
			Size: 8, Align: align.Center, Top: 3, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: store name plus the receipt title and timestamp.
func (g *MarotoReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary,
				Align: align.Center, Top: 1,
			}),
			text.New("Struk Pembelian - "+receipt.FormatTimestamp(sale), props.Text{
				Size: 8, Align: align.Center, Top: 9, Color: colorGray,
			}),
		),
	)
}

// detailRows: one labelled line per receipt field.
func (g *MarotoReceiptGenerator) detailRows(sale *entity.Sale) []core.Row {
	buyer := sale.BuyerName
	if buyer == "" {
		buyer = "-"
	}
	field := func(label, value string) core.Row {
		return row.New(7).Add(
			col.New(4).Add(text.New(label, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			})),
			col.New(8).Add(text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1, Align: align.Right,
			})),
		)
	}
	return []core.Row{
		field("Produk", sale.ProductName),
		field("Jumlah", fmt.Sprintf("%d", sale.Qty)),
		field("Harga Satuan", g.formatter.Rupiah(sale.Price)),
		field("Pembeli", buyer),
		field("Tipe", sale.CustomerType),
	}
}

// totalRow: the grand total, the only oversized line on the receipt.
func (g *MarotoReceiptGenerator) totalRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(
		col.New(4).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 2, Color: colorPrimary,
		})),
		col.New(8).Add(text.New(g.formatter.Rupiah(sale.Total()), props.Text{
			Style: fontstyle.Bold, Size: 12, Top: 2, Align: align.Right,
			Color: colorPrimary,
		})),
	)
}
