package ports

import (
	"context"

	"github.com/99minutos/car-booking/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Booking, error)
	// UpdateOwned applies changes only when the booking is still owned by
	// ownerID, in a single write. Returns domain.ErrBookingNotFound otherwise.
	UpdateOwned(ctx context.Context, id, ownerID int64, changes domain.BookingChanges) (*domain.Booking, error)
	// DeleteOwned removes the booking only when it is still owned by ownerID.
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}
