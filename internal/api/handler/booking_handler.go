package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
	"github.com/99minutos/car-booking/internal/pkg/metrics"
)

// BookingHandler handles HTTP requests for booking operations. Every route
// sits behind the Auth middleware.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /bookings.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Car, days and daily rent"
// @Success      201   {object}  successResponse{data=createBookingData}
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}

	result, err := h.service.Create(c.Request().Context(), caller, toCreateInput(req))
	metrics.BookingOperationsTotal.WithLabelValues("create", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ok(createBookingData{
		Message:   "Booking created successfully",
		BookingID: result.BookingID,
		TotalCost: result.TotalCost,
	}))
}

// Get handles GET /bookings?bookingId=<id> and GET /bookings?summary=true.
//
// @Summary      Get a booking or the caller's booking summary
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  query     string  false  "Booking id"
// @Param        summary    query     bool    false  "Return the caller's summary"
// @Success      200        {object}  successResponse{data=bookingResponse}
// @Failure      400        {object}  errorBody
// @Failure      401        {object}  errorBody
// @Failure      404        {object}  errorBody
// @Failure      500        {object}  errorBody
// @Router       /bookings [get]
func (h *BookingHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	query := ports.BookingQuery{
		BookingID: c.QueryParam("bookingId"),
		Summary:   c.QueryParam("summary") == "true",
	}
	operation := "get"
	if query.BookingID == "" && query.Summary {
		operation = "summary"
	}

	result, err := h.service.Get(c.Request().Context(), caller, query)
	metrics.BookingOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	if result.Summary != nil {
		return c.JSON(http.StatusOK, ok(toSummaryResponse(result.Summary)))
	}
	return c.JSON(http.StatusOK, ok(toBookingResponse(result.Booking)))
}

// Update handles PUT /bookings/:bookingId.
//
// A non-empty status updates only the status; otherwise carName, days and
// rentPerDay are all required.
//
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  path      string                true  "Booking id"
// @Param        body       body      updateBookingRequest  true  "Status or full details"
// @Success      200        {object}  successResponse{data=updateBookingData}
// @Failure      400        {object}  errorBody
// @Failure      401        {object}  errorBody
// @Failure      403        {object}  errorBody
// @Failure      404        {object}  errorBody
// @Failure      500        {object}  errorBody
// @Router       /bookings/{bookingId} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}

	detail, err := h.service.Update(c.Request().Context(), caller, c.Param("bookingId"), toUpdateInput(req))
	metrics.BookingOperationsTotal.WithLabelValues("update", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok(updateBookingData{
		Message: "Booking updated successfully",
		Booking: toBookingResponse(detail),
	}))
}

// Delete handles DELETE /bookings/:bookingId.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  path      string  true  "Booking id"
// @Success      200        {object}  successResponse{data=messageData}
// @Failure      400        {object}  errorBody
// @Failure      401        {object}  errorBody
// @Failure      403        {object}  errorBody
// @Failure      404        {object}  errorBody
// @Failure      500        {object}  errorBody
// @Router       /bookings/{bookingId} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), caller, c.Param("bookingId"))
	metrics.BookingOperationsTotal.WithLabelValues("delete", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok(messageData{Message: "Booking deleted successfully"}))
}
