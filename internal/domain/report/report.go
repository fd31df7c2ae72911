// Package report holds the read-side aggregation views: deterministic,
// pure folds over a snapshot of products and sales. They carry no
// invariants of their own and must be recomputed whenever the catalog
// or the ledger changes.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeyostore/pos-api/internal/domain/entity"
)

// LowStockThreshold is the fixed cutoff for the low-stock widget.
const LowStockThreshold = 10

// TopN is the number of products shown in the top-sellers ranking.
const TopN = 5

// Ranking metrics for TopProducts.
const (
	MetricQty     = "qty"
	MetricRevenue = "revenue"
)

// Revenue windows for time-bucketed charts.
type Window string

const (
	WindowToday Window = "today"
	Window7Days Window = "7d"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

// Indonesian short labels, as rendered by the storefront.
var (
	monthShort   = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
	weekdayShort = [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"} // indexed by time.Weekday
)

// TotalRevenue folds the ledger into the sum of qty x unit price snapshot.
// Order-independent and idempotent over the same snapshot.
func TotalRevenue(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total())
	}
	return total
}

// TotalStock sums the current stock over all products.
func TotalStock(products []*entity.Product) int64 {
	var total int64
	for _, p := range products {
		total += p.Stock
	}
	return total
}

// LowStock returns products at or below the fixed threshold, preserving
// catalog order.
func LowStock(products []*entity.Product) []*entity.Product {
	var out []*entity.Product
	for _, p := range products {
		if p.Stock <= LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// TopProduct is one row of the top-sellers ranking.
type TopProduct struct {
	Name    string
	Qty     int64
	Revenue decimal.Decimal
}

// TopProducts groups sales by product name snapshot (not a live lookup,
// so renamed or deleted products still count), sums the chosen metric and
// returns the first n in descending order. Ties keep the order in which
// a name was first encountered in the input.
func TopProducts(sales []*entity.Sale, metric string, n int) []TopProduct {
	idx := make(map[string]int, len(sales))
	var rows []TopProduct
	for _, s := range sales {
		i, ok := idx[s.ProductName]
		if !ok {
			i = len(rows)
			idx[s.ProductName] = i
			rows = append(rows, TopProduct{Name: s.ProductName, Revenue: decimal.Zero})
		}
		rows[i].Qty += s.Qty
		rows[i].Revenue = rows[i].Revenue.Add(s.Total())
	}

	less := func(a, b TopProduct) bool {
		if metric == MetricRevenue {
			return a.Revenue.LessThan(b.Revenue)
		}
		return a.Qty < b.Qty
	}
	// Stable insertion sort: equal entries never swap, so the
	// first-encountered order survives as the documented tie-break.
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && less(rows[j-1], rows[j]); j-- {
			rows[j-1], rows[j] = rows[j], rows[j-1]
		}
	}
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Bucket is one calendar slot of a time-bucketed chart.
type Bucket struct {
	Label   string
	Qty     int64
	Revenue decimal.Decimal
}

// Buckets groups sales into calendar slots for the given window, anchored
// at now: hours for today, weekdays for the last 7 days, days of month for
// this month, months for this year. Slots come back in calendar order and
// are zero-filled; sales outside the window are ignored.
func Buckets(sales []*entity.Sale, window Window, now time.Time) []Bucket {
	switch window {
	case WindowToday:
		start := startOfDay(now)
		return bucketize(sales, 24, start, start.AddDate(0, 0, 1), func(t time.Time) int {
			return t.Hour()
		}, func(i int) string { return padHour(i) })
	case Window7Days:
		start := startOfDay(now).AddDate(0, 0, -6)
		return bucketize(sales, 7, start, start.AddDate(0, 0, 7), func(t time.Time) int {
			return int(startOfDay(t).Sub(start).Hours() / 24)
		}, func(i int) string {
			return weekdayShort[start.AddDate(0, 0, i).Weekday()]
		})
	case WindowMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return bucketize(sales, daysInMonth(now), start, start.AddDate(0, 1, 0), func(t time.Time) int {
			return t.Day() - 1
		}, func(i int) string { return itoa2(i + 1) })
	default: // WindowYear
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return bucketize(sales, 12, start, start.AddDate(1, 0, 0), func(t time.Time) int {
			return int(t.Month()) - 1
		}, func(i int) string { return monthShort[i] })
	}
}

// WindowStart returns the inclusive lower bound of a window anchored at now.
func WindowStart(window Window, now time.Time) time.Time {
	switch window {
	case WindowToday:
		return startOfDay(now)
	case Window7Days:
		return startOfDay(now).AddDate(0, 0, -6)
	case WindowMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	}
}

func bucketize(
	sales []*entity.Sale,
	slots int,
	start, end time.Time,
	slotOf func(time.Time) int,
	labelOf func(int) string,
) []Bucket {
	out := make([]Bucket, slots)
	for i := range out {
		out[i] = Bucket{Label: labelOf(i), Revenue: decimal.Zero}
	}
	for _, s := range sales {
		t := s.SoldAt.In(start.Location())
		if t.Before(start) || !t.Before(end) {
			continue
		}
		i := slotOf(t)
		if i < 0 || i >= slots {
			continue
		}
		out[i].Qty += s.Qty
		out[i].Revenue = out[i].Revenue.Add(s.Total())
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func padHour(h int) string {
	return itoa2(h) + ":00"
}

func itoa2(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
