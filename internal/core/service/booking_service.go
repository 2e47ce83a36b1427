package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
)

type BookingService struct {
	bookings ports.BookingRepository
	users    ports.UserRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewBookingService(bookings ports.BookingRepository, users ports.UserRepository, log zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the input and persists a new BOOKED booking owned by the caller.
func (s *BookingService) Create(ctx context.Context, caller domain.Caller, input ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.bookings.Create(ctx, &domain.Booking{
		OwnerID:    caller.ID,
		CarName:    *input.CarName,
		Days:       *input.Days,
		RentPerDay: *input.RentPerDay,
		Status:     domain.StatusBooked,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", caller.ID).Msg("failed to create booking")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info().Int64("booking_id", created.ID).Int64("user_id", caller.ID).Msg("booking created")

	return &ports.CreateBookingResult{
		BookingID: created.ID,
		TotalCost: created.TotalCost(),
	}, nil
}

// Get returns a single booking when query.BookingID is set, otherwise the
// caller's summary when query.Summary is set.
//
// Reading by id does not check ownership; any authenticated caller may read
// any booking.
func (s *BookingService) Get(ctx context.Context, caller domain.Caller, query ports.BookingQuery) (*ports.BookingQueryResult, error) {
	switch {
	case query.BookingID != "":
		id, err := domain.ParseBookingID(query.BookingID)
		if err != nil {
			return nil, err
		}
		b, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get booking: %w", err)
		}
		return &ports.BookingQueryResult{Booking: toDetail(b)}, nil

	case query.Summary:
		summary, err := s.summary(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		return &ports.BookingQueryResult{Summary: summary}, nil
	}

	return nil, domain.ErrMissingBookingQuery
}

func (s *BookingService) summary(ctx context.Context, userID int64) (*ports.BookingSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("booking summary: %w", err)
	}

	bookings, err := s.bookings.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("booking summary: %w", err)
	}

	var total float64
	for _, b := range bookings {
		total += b.TotalCost()
	}

	return &ports.BookingSummary{
		UserID:           user.ID,
		Username:         user.Username,
		TotalBookings:    len(bookings),
		TotalAmountSpent: total,
	}, nil
}

// Update applies either a status change or a full detail edit to a booking
// owned by the caller. Status changes are unrestricted between known statuses.
func (s *BookingService) Update(ctx context.Context, caller domain.Caller, bookingID string, input ports.UpdateBookingInput) (*ports.BookingDetail, error) {
	id, err := s.ownedBooking(ctx, caller, bookingID)
	if err != nil {
		return nil, err
	}

	changes := domain.BookingChanges{UpdatedAt: s.now()}
	if input.Status != nil && *input.Status != "" {
		status := domain.BookingStatus(*input.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidInput
		}
		changes.Status = &status
	} else {
		details := ports.CreateBookingInput{
			CarName:    input.CarName,
			Days:       input.Days,
			RentPerDay: input.RentPerDay,
		}
		if err := validateInput(details); err != nil {
			return nil, err
		}
		changes.CarName = details.CarName
		changes.Days = details.Days
		changes.RentPerDay = details.RentPerDay
	}

	updated, err := s.bookings.UpdateOwned(ctx, id, caller.ID, changes)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info().
		Int64("booking_id", id).
		Int64("user_id", caller.ID).
		Str("status", string(updated.Status)).
		Msg("booking updated")

	return toDetail(updated), nil
}

// Delete removes a booking owned by the caller.
func (s *BookingService) Delete(ctx context.Context, caller domain.Caller, bookingID string) error {
	id, err := s.ownedBooking(ctx, caller, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookings.DeleteOwned(ctx, id, caller.ID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info().Int64("booking_id", id).Int64("user_id", caller.ID).Msg("booking deleted")
	return nil
}

// ownedBooking parses the id and checks existence and ownership, in that order.
func (s *BookingService) ownedBooking(ctx context.Context, caller domain.Caller, rawID string) (int64, error) {
	id, err := domain.ParseBookingID(rawID)
	if err != nil {
		return 0, err
	}

	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("load booking: %w", err)
	}
	if b.OwnerID != caller.ID {
		return 0, domain.ErrBookingNotOwned
	}
	return id, nil
}

func toDetail(b *domain.Booking) *ports.BookingDetail {
	return &ports.BookingDetail{
		ID:         b.ID,
		CarName:    b.CarName,
		Days:       b.Days,
		RentPerDay: b.RentPerDay,
		Status:     b.Status,
		TotalCost:  b.TotalCost(),
	}
}
