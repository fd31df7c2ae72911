package repository

import (
	"context"

	"github.com/jeyostore/pos-api/internal/domain/entity"
)

// ProductRepository is the persistence port for Product (DIP).
// GetByID and GetForUpdate return (nil, nil) when no row matches.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate reads the product row under a row lock. Only meaningful
	// inside a transaction; the stock-consistency rule depends on it.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// List returns products ordered by name, optionally including hidden ones.
	List(ctx context.Context, includeHidden bool) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SetHidden(ctx context.Context, id string, hidden bool) error
	// AddStock applies a manual stock addition and records the
	// last-addition audit fields with the server clock.
	AddStock(ctx context.Context, id string, qty int64) error
	// DecrementStock subtracts qty conditionally (stock >= qty); it returns
	// domain.ErrInsufficientStock when the condition does not hold.
	DecrementStock(ctx context.Context, id string, qty int64) error
	// IncrementStock credits qty back. Returns credited=false when the
	// product no longer exists, which is not an error for reversals.
	IncrementStock(ctx context.Context, id string, qty int64) (credited bool, err error)
	Delete(ctx context.Context, id string) error
}
