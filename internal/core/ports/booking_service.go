package ports

import (
	"context"

	"github.com/99minutos/car-booking/internal/core/domain"
)

// CreateBookingInput carries the client fields for a new booking. Pointers
// distinguish an absent field from a zero value.
type CreateBookingInput struct {
	CarName    *string  `validate:"required,notblank"`
	Days       *int     `validate:"required,min=1,max=365"`
	RentPerDay *float64 `validate:"required,gt=0,lte=2000"`
}

// UpdateBookingInput selects one of two modes: a non-empty Status updates the
// status only; otherwise all detail fields are required.
type UpdateBookingInput struct {
	Status     *string
	CarName    *string
	Days       *int
	RentPerDay *float64
}

// BookingQuery selects a single booking by id or the caller's summary.
type BookingQuery struct {
	BookingID string
	Summary   bool
}

// CreateBookingResult is returned after a booking is persisted.
type CreateBookingResult struct {
	BookingID int64
	TotalCost float64
}

// BookingDetail is the read view of one booking with its derived total.
type BookingDetail struct {
	ID         int64
	CarName    string
	Days       int
	RentPerDay float64
	Status     domain.BookingStatus
	TotalCost  float64
}

// BookingSummary aggregates every booking of a user regardless of status.
type BookingSummary struct {
	UserID           int64
	Username         string
	TotalBookings    int
	TotalAmountSpent float64
}

// BookingQueryResult holds exactly one of Booking or Summary.
type BookingQueryResult struct {
	Booking *BookingDetail
	Summary *BookingSummary
}

// BookingService defines use-case operations for bookings. Every call takes
// the caller resolved by the auth middleware.
type BookingService interface {
	Create(ctx context.Context, caller domain.Caller, input CreateBookingInput) (*CreateBookingResult, error)
	Get(ctx context.Context, caller domain.Caller, query BookingQuery) (*BookingQueryResult, error)
	Update(ctx context.Context, caller domain.Caller, bookingID string, input UpdateBookingInput) (*BookingDetail, error)
	Delete(ctx context.Context, caller domain.Caller, bookingID string) error
}
