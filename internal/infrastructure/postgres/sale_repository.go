package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jeyostore/pos-api/internal/domain"
	"github.com/jeyostore/pos-api/internal/domain/entity"
	"github.com/jeyostore/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, product_id, product_name, product_category, qty, price, buyer_name, customer_type, sold_at`

// SaleRepo implements the SaleRepository port over PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the persistence adapter for the sales ledger.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserts the sale and reads SoldAt back so the timestamp comes
// from the database clock, not the API host.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, product_name, product_category, qty, price, buyer_name, customer_type, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING sold_at`
	err := r.q.QueryRow(ctx, query,
		sale.ID, sale.ProductID, sale.ProductName, sale.ProductCategory,
		sale.Qty, sale.Price, sale.BuyerName, sale.CustomerType,
	).Scan(&sale.SoldAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID fetches a sale by id.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate fetches a sale holding a row lock, so a reversal cannot
// race another reversal of the same entry.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ProductID, &s.ProductName, &s.ProductCategory,
		&s.Qty, &s.Price, &s.BuyerName, &s.CustomerType, &s.SoldAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List returns ledger entries newest first, optionally filtered.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	var (
		conds []string
		args  []any
	)
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conds = append(conds, "sold_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.CustomerType != "" {
		args = append(args, filter.CustomerType)
		conds = append(conds, "customer_type = $"+strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, "product_category = $"+strconv.Itoa(len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY sold_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.ProductCategory,
			&s.Qty, &s.Price, &s.BuyerName, &s.CustomerType, &s.SoldAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateDisplayFields patches buyer name, customer type and the category
// snapshot. Qty, ProductID and Price stay immutable.
func (r *SaleRepo) UpdateDisplayFields(ctx context.Context, id string, buyerName, customerType, category *string) error {
	query := `
		UPDATE sales
		SET buyer_name       = COALESCE($2, buyer_name),
		    customer_type    = COALESCE($3, customer_type),
		    product_category = COALESCE($4, product_category)
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, buyerName, customerType, category)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// Delete removes a single ledger entry by id.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// DeleteByProduct wipes every ledger entry for a product (purge cascade).
func (r *SaleRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete sales by product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// SumByProduct rolls the ledger up per product id for the drift report.
func (r *SaleRepo) SumByProduct(ctx context.Context) ([]repository.ProductSaleTotal, error) {
	query := `
		SELECT product_id, COUNT(*), COALESCE(SUM(qty), 0)
		FROM sales
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum sales by product: %w", err)
	}
	defer rows.Close()
	var totals []repository.ProductSaleTotal
	for rows.Next() {
		var t repository.ProductSaleTotal
		if err := rows.Scan(&t.ProductID, &t.SaleCount, &t.TotalQty); err != nil {
			return nil, fmt.Errorf("scan sale total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
