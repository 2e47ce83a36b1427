package handler

import (
	"github.com/99minutos/car-booking/internal/core/ports"
)

// --- Request types ---

// Pointer fields keep "absent" apart from zero so the service can reject
// missing values instead of booking a car for 0 days.
type createBookingRequest struct {
	CarName    *string  `json:"carName"`
	Days       *int     `json:"days"`
	RentPerDay *float64 `json:"rentPerDay"`
}

type updateBookingRequest struct {
	Status     *string  `json:"status"`
	CarName    *string  `json:"carName"`
	Days       *int     `json:"days"`
	RentPerDay *float64 `json:"rentPerDay"`
}

// --- Response types ---

type createBookingData struct {
	Message   string  `json:"message"`
	BookingID int64   `json:"bookingId"`
	TotalCost float64 `json:"totalCost"`
}

type bookingResponse struct {
	ID         int64   `json:"id"`
	CarName    string  `json:"car_name"`
	Days       int     `json:"days"`
	RentPerDay float64 `json:"rent_per_day"`
	Status     string  `json:"status"`
	TotalCost  float64 `json:"totalCost"`
}

type summaryResponse struct {
	UserID           int64   `json:"userId"`
	Username         string  `json:"username"`
	TotalBookings    int     `json:"totalBookings"`
	TotalAmountSpent float64 `json:"totalAmountSpent"`
}

type updateBookingData struct {
	Message string          `json:"message"`
	Booking bookingResponse `json:"booking"`
}

type messageData struct {
	Message string `json:"message"`
}

// --- Mappers ---

func toCreateInput(req createBookingRequest) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		CarName:    req.CarName,
		Days:       req.Days,
		RentPerDay: req.RentPerDay,
	}
}

func toUpdateInput(req updateBookingRequest) ports.UpdateBookingInput {
	return ports.UpdateBookingInput{
		Status:     req.Status,
		CarName:    req.CarName,
		Days:       req.Days,
		RentPerDay: req.RentPerDay,
	}
}

func toBookingResponse(d *ports.BookingDetail) bookingResponse {
	return bookingResponse{
		ID:         d.ID,
		CarName:    d.CarName,
		Days:       d.Days,
		RentPerDay: d.RentPerDay,
		Status:     string(d.Status),
		TotalCost:  d.TotalCost,
	}
}

func toSummaryResponse(s *ports.BookingSummary) summaryResponse {
	return summaryResponse{
		UserID:           s.UserID,
		Username:         s.Username,
		TotalBookings:    s.TotalBookings,
		TotalAmountSpent: s.TotalAmountSpent,
	}
}
