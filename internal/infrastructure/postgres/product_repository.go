package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jeyostore/pos-api/internal/domain"
	"github.com/jeyostore/pos-api/internal/domain/entity"
	"github.com/jeyostore/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, price, stock, is_hidden, created_at, last_stock_added_at, last_stock_added_qty`

// ProductRepo implements the ProductRepository port over PostgreSQL
// (usable with a pool or a tx via Querier).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter for products.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category, price, stock, is_hidden, created_at, last_stock_added_at, last_stock_added_qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Price, product.Stock,
		product.IsHidden, product.CreatedAt, product.LastStockAddedAt, product.LastStockAddedQty,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate fetches a product by id holding a row lock. Only meaningful
// inside a transaction.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.IsHidden,
		&p.CreatedAt, &p.LastStockAddedAt, &p.LastStockAddedQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns products ordered by name.
func (r *ProductRepo) List(ctx context.Context, includeHidden bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if !includeHidden {
		query += ` WHERE is_hidden = false`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.IsHidden,
			&p.CreatedAt, &p.LastStockAddedAt, &p.LastStockAddedQty); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update rewrites the editable catalog fields, including the sanctioned
// manual stock edit. The last-addition audit fields belong to AddStock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, price = $4, stock = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Price, product.Stock,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// SetHidden toggles the visibility flag.
func (r *ProductRepo) SetHidden(ctx context.Context, id string, hidden bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET is_hidden = $2 WHERE id = $1`, id, hidden)
	if err != nil {
		return fmt.Errorf("set product visibility: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// AddStock applies a manual addition and stamps the audit fields with the
// server clock.
func (r *ProductRepo) AddStock(ctx context.Context, id string, qty int64) error {
	query := `
		UPDATE products
		SET stock = stock + $2, last_stock_added_at = now(), last_stock_added_qty = $2
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock subtracts qty only when enough stock remains. The
// condition runs inside the UPDATE itself, so stock can never go negative
// even without the caller's row lock.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// IncrementStock credits qty back. Zero rows means the product is gone,
// which the reversal path treats as "nothing to credit".
func (r *ProductRepo) IncrementStock(ctx context.Context, id string, qty int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock + $2 WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return false, fmt.Errorf("increment stock: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete removes a product by id. The ledger is left alone (snapshot-
// preserving policy); the cascade lives in the purge use case.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
