package handler

import (
	"github.com/99minutos/car-booking/internal/core/domain"
)

// successResponse wraps every successful payload: {"success": true, "data": ...}.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func ok(data any) successResponse {
	return successResponse{Success: true, Data: data}
}

// resultLabel is the metrics "result" label for an operation outcome.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return string(domain.KindOf(err))
}
