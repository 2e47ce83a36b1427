package domain

import (
	"strconv"
	"strings"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses. Any known status may
// follow any other.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a car rental record owned by a single user.
type Booking struct {
	ID         int64         `json:"id"`
	OwnerID    int64         `json:"owner_id"`
	CarName    string        `json:"car_name"`
	Days       int           `json:"days"`
	RentPerDay float64       `json:"rent_per_day"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// TotalCost is always derived, never stored.
func (b *Booking) TotalCost() float64 {
	return float64(b.Days) * b.RentPerDay
}

// BookingChanges is the set of fields applied by an owner update. Nil fields
// are left untouched; UpdatedAt is always written.
type BookingChanges struct {
	CarName    *string
	Days       *int
	RentPerDay *float64
	Status     *BookingStatus
	UpdatedAt  time.Time
}

// ParseBookingID parses a client-supplied booking id, which must be a
// positive integer.
func ParseBookingID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidBookingID
	}
	return id, nil
}
