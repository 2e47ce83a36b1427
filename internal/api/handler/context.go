package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/car-booking/internal/api/middleware"
	"github.com/99minutos/car-booking/internal/core/domain"
)

// ctxCaller extracts the caller injected by the Auth middleware. A missing
// caller means the route was mounted without the gate.
func ctxCaller(c echo.Context) (domain.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.ID <= 0 {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return caller, nil
}
