package receipt_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeyostore/pos-api/internal/application/receipt"
	"github.com/jeyostore/pos-api/internal/domain/entity"
)

func testSale() *entity.Sale {
	return &entity.Sale{
		ID:          "s1",
		ProductID:   "p1",
		ProductName: "Mie Lidi Pedas",
		Qty:         5,
		Price:       decimal.NewFromInt(10000),
		BuyerName:   "Budi",
		SoldAt:      time.Date(2026, time.August, 29, 18, 30, 0, 0, time.UTC),
	}
}

func TestRupiahFormatting(t *testing.T) {
	f := receipt.NewFormatter("Jeyo Store", "6289699335843")

	assert.Equal(t, "Rp 50.000", f.Rupiah(decimal.NewFromInt(50000)))
	assert.Equal(t, "Rp 1.250.000", f.Rupiah(decimal.NewFromInt(1250000)))
	assert.Equal(t, "Rp 0", f.Rupiah(decimal.Zero))
}

func TestMessageContents(t *testing.T) {
	f := receipt.NewFormatter("Jeyo Store", "6289699335843")
	msg := f.Message(testSale())

	assert.Contains(t, msg, "Struk Pembelian Jeyo Store")
	assert.Contains(t, msg, "Produk: *Mie Lidi Pedas*")
	assert.Contains(t, msg, "Jumlah: *5*")
	assert.Contains(t, msg, "Total Harga: *Rp 50.000*", "total is qty x price snapshot")
	assert.Contains(t, msg, "Pembeli: Budi")
	assert.Contains(t, msg, "Tanggal: 29 Agu 2026 18:30")
}

func TestMessage_AnonymousBuyer(t *testing.T) {
	f := receipt.NewFormatter("Jeyo Store", "6289699335843")
	s := testSale()
	s.BuyerName = ""

	assert.Contains(t, f.Message(s), "Pembeli: -")
}

func TestBuild_WhatsAppLink(t *testing.T) {
	f := receipt.NewFormatter("Jeyo Store", "6289699335843")
	out := f.Build(testSale())

	assert.Equal(t, "s1", out.SaleID)
	require.True(t, strings.HasPrefix(out.WhatsAppLink, "https://wa.me/6289699335843?text="))

	// The link round-trips to the exact message.
	u, err := url.Parse(out.WhatsAppLink)
	require.NoError(t, err)
	assert.Equal(t, out.Message, u.Query().Get("text"))
}
