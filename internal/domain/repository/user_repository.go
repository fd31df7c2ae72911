package repository

import (
	"context"

	"github.com/jeyostore/pos-api/internal/domain/entity"
)

// UserRepository is the persistence port for User (DIP).
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
