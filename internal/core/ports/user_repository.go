package ports

import (
	"context"

	"github.com/99minutos/car-booking/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create assigns an id and persists the user. The store's unique index on
	// username is authoritative; a duplicate yields domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
