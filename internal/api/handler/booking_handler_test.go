package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/car-booking/internal/api/middleware"
	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
)

type stubBookingService struct {
	createFn func(ctx context.Context, caller domain.Caller, in ports.CreateBookingInput) (*ports.CreateBookingResult, error)
	getFn    func(ctx context.Context, caller domain.Caller, q ports.BookingQuery) (*ports.BookingQueryResult, error)
	updateFn func(ctx context.Context, caller domain.Caller, id string, in ports.UpdateBookingInput) (*ports.BookingDetail, error)
	deleteFn func(ctx context.Context, caller domain.Caller, id string) error
}

func (s *stubBookingService) Create(ctx context.Context, caller domain.Caller, in ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubBookingService) Get(ctx context.Context, caller domain.Caller, q ports.BookingQuery) (*ports.BookingQueryResult, error) {
	return s.getFn(ctx, caller, q)
}

func (s *stubBookingService) Update(ctx context.Context, caller domain.Caller, id string, in ports.UpdateBookingInput) (*ports.BookingDetail, error) {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubBookingService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	return s.deleteFn(ctx, caller, id)
}

var alice = domain.Caller{ID: 1, Username: "alice"}

func authedContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := jsonContext(method, target, body)
	middleware.SetCaller(c, alice)
	return c, rec
}

func TestBookingHandler_Create_Success(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, caller domain.Caller, in ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
			if caller != alice {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			if in.CarName == nil || *in.CarName != "Civic" || in.Days == nil || *in.Days != 3 || in.RentPerDay == nil || *in.RentPerDay != 50 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.CreateBookingResult{BookingID: 7, TotalCost: 150}, nil
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := authedContext(http.MethodPost, "/bookings", `{"carName":"Civic","days":3,"rentPerDay":50}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["bookingId"] != float64(7) || data["totalCost"] != float64(150) || data["message"] != "Booking created successfully" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestBookingHandler_Create_MissingFieldsStayNil(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, caller domain.Caller, in ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
			if in.Days != nil || in.RentPerDay != nil {
				t.Fatalf("absent fields must be nil: %+v", in)
			}
			return nil, domain.ErrInvalidInput
		},
	}
	handler := NewBookingHandler(stub)

	c, _ := authedContext(http.MethodPost, "/bookings", `{"carName":"Civic"}`)
	if err := handler.Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBookingHandler_Create_WrongTypeIsInvalidInput(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{})

	c, _ := authedContext(http.MethodPost, "/bookings", `{"carName":"Civic","days":"three","rentPerDay":50}`)
	if err := handler.Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBookingHandler_RequiresCaller(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{})

	c, _ := jsonContext(http.MethodPost, "/bookings", `{}`)
	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBookingHandler_Get_Booking(t *testing.T) {
	stub := &stubBookingService{
		getFn: func(ctx context.Context, caller domain.Caller, q ports.BookingQuery) (*ports.BookingQueryResult, error) {
			if q.BookingID != "7" || q.Summary {
				t.Fatalf("unexpected query: %+v", q)
			}
			return &ports.BookingQueryResult{Booking: &ports.BookingDetail{
				ID: 7, CarName: "Civic", Days: 3, RentPerDay: 50, Status: domain.StatusBooked, TotalCost: 150,
			}}, nil
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := authedContext(http.MethodGet, "/bookings?bookingId=7", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	data := decodeData(t, rec)
	if data["id"] != float64(7) || data["car_name"] != "Civic" || data["rent_per_day"] != float64(50) ||
		data["status"] != "BOOKED" || data["totalCost"] != float64(150) {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestBookingHandler_Get_Summary(t *testing.T) {
	stub := &stubBookingService{
		getFn: func(ctx context.Context, caller domain.Caller, q ports.BookingQuery) (*ports.BookingQueryResult, error) {
			if !q.Summary || q.BookingID != "" {
				t.Fatalf("unexpected query: %+v", q)
			}
			return &ports.BookingQueryResult{Summary: &ports.BookingSummary{
				UserID: 1, Username: "alice", TotalBookings: 2, TotalAmountSpent: 350,
			}}, nil
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := authedContext(http.MethodGet, "/bookings?summary=true", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	data := decodeData(t, rec)
	if data["userId"] != float64(1) || data["username"] != "alice" ||
		data["totalBookings"] != float64(2) || data["totalAmountSpent"] != float64(350) {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestBookingHandler_Update_PassesPathAndBody(t *testing.T) {
	stub := &stubBookingService{
		updateFn: func(ctx context.Context, caller domain.Caller, id string, in ports.UpdateBookingInput) (*ports.BookingDetail, error) {
			if id != "7" || in.Status == nil || *in.Status != "CANCELLED" {
				t.Fatalf("unexpected args: %s %+v", id, in)
			}
			return &ports.BookingDetail{ID: 7, CarName: "Civic", Days: 3, RentPerDay: 50, Status: domain.StatusCancelled, TotalCost: 150}, nil
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := authedContext(http.MethodPut, "/bookings/7", `{"status":"CANCELLED"}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("7")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	data := decodeData(t, rec)
	booking, ok := data["booking"].(map[string]any)
	if !ok || booking["status"] != "CANCELLED" || data["message"] != "Booking updated successfully" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestBookingHandler_Update_Forbidden(t *testing.T) {
	stub := &stubBookingService{
		updateFn: func(ctx context.Context, caller domain.Caller, id string, in ports.UpdateBookingInput) (*ports.BookingDetail, error) {
			return nil, domain.ErrBookingNotOwned
		},
	}
	handler := NewBookingHandler(stub)

	c, _ := authedContext(http.MethodPut, "/bookings/7", `{"status":"CANCELLED"}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("7")
	if err := handler.Update(c); !errors.Is(err, domain.ErrBookingNotOwned) {
		t.Fatalf("expected ErrBookingNotOwned, got %v", err)
	}
}

func TestBookingHandler_Delete(t *testing.T) {
	var gotID string
	stub := &stubBookingService{
		deleteFn: func(ctx context.Context, caller domain.Caller, id string) error {
			gotID = id
			return nil
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := authedContext(http.MethodDelete, "/bookings/7", "")
	c.SetParamNames("bookingId")
	c.SetParamValues("7")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if gotID != "7" || rec.Code != http.StatusOK {
		t.Fatalf("unexpected result id=%s code=%d", gotID, rec.Code)
	}
	if data := decodeData(t, rec); data["message"] != "Booking deleted successfully" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}
