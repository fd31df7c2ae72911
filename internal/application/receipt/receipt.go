// Package receipt formats a completed sale into the store's WhatsApp
// receipt message. Pure string formatting; sending is just a deep link the
// client opens.
package receipt

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jeyostore/pos-api/internal/application/dto"
	"github.com/jeyostore/pos-api/internal/domain/entity"
)

var indonesianMonths = [12]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// Formatter renders receipts for one store.
type Formatter struct {
	storeName string
	phone     string // international format without '+', e.g. 6289699335843
	printer   *message.Printer
}

// NewFormatter builds a formatter with the store identity from config.
func NewFormatter(storeName, phone string) *Formatter {
	return &Formatter{
		storeName: storeName,
		phone:     phone,
		printer:   message.NewPrinter(language.Indonesian),
	}
}

// Build renders the receipt text for a sale and the wa.me link carrying it.
func (f *Formatter) Build(sale *entity.Sale) *dto.ReceiptResponse {
	msg := f.Message(sale)
	return &dto.ReceiptResponse{
		SaleID:       sale.ID,
		Message:      msg,
		WhatsAppLink: f.Link(msg),
	}
}

// Message renders the receipt body.
func (f *Formatter) Message(sale *entity.Sale) string {
	buyer := sale.BuyerName
	if buyer == "" {
		buyer = "-"
	}
	return fmt.Sprintf(`*Struk Pembelian %s* 🧾
-----------------------------------
Produk: *%s*
Jumlah: *%d*
Total Harga: *%s*
Pembeli: %s
Tanggal: %s
-----------------------------------
Terima kasih telah berbelanja! 🙏`,
		f.storeName,
		sale.ProductName,
		sale.Qty,
		f.Rupiah(sale.Total()),
		buyer,
		FormatTimestamp(sale),
	)
}

// Link builds the wa.me deep link to the store's fixed phone number.
func (f *Formatter) Link(msg string) string {
	return "https://wa.me/" + f.phone + "?text=" + url.QueryEscape(msg)
}

// Rupiah formats a whole-Rupiah amount with Indonesian digit grouping,
// e.g. 50000 -> "Rp 50.000".
func (f *Formatter) Rupiah(amount decimal.Decimal) string {
	return f.printer.Sprintf("Rp %d", amount.IntPart())
}

// FormatTimestamp renders soldAt the way the storefront shows it,
// e.g. "29 Agu 2026 18:30".
func FormatTimestamp(sale *entity.Sale) string {
	t := sale.SoldAt
	return fmt.Sprintf("%02d %s %d %02d:%02d",
		t.Day(), indonesianMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
