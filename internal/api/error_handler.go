package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/car-booking/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind"`
}

var kindStatus = map[domain.Kind]int{
	domain.KindInvalidInput:    http.StatusBadRequest,
	domain.KindConflict:        http.StatusConflict,
	domain.KindUnauthenticated: http.StatusUnauthorized,
	domain.KindUnauthorized:    http.StatusUnauthorized,
	domain.KindForbidden:       http.StatusForbidden,
	domain.KindNotFound:        http.StatusNotFound,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps classified domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "kind": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (router 404/405, oversized bodies, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Kind: kindForStatus(he.Code)}
	}

	// The wrapped chain may carry context for logs; clients only see Message.
	var de *domain.Error
	if errors.As(err, &de) {
		if code, ok := kindStatus[de.Kind]; ok {
			return code, errorResponse{Error: de.Message, Kind: de.Kind}
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Kind: domain.KindInternal}
}

func kindForStatus(code int) domain.Kind {
	switch {
	case code == http.StatusUnauthorized:
		return domain.KindUnauthenticated
	case code == http.StatusForbidden:
		return domain.KindForbidden
	case code == http.StatusNotFound || code == http.StatusMethodNotAllowed:
		return domain.KindNotFound
	case code == http.StatusConflict:
		return domain.KindConflict
	case code >= 400 && code < 500:
		return domain.KindInvalidInput
	default:
		return domain.KindInternal
	}
}
