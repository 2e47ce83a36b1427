package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
	"github.com/99minutos/car-booking/internal/pkg/metrics"
)

const callerKey = "caller"

// UserLookup resolves the account referenced by a verified token.
type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth verifies the bearer token, confirms the referenced user still exists
// and stores the resolved domain.Caller in the echo context. It is the only
// gate in front of the booking routes.
//
// A token that verifies but points at a missing user is reported exactly
// like a bad token.
func Auth(tokens ports.TokenService, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject("header_missing", domain.ErrAuthHeaderMissing)
			}

			scheme, token, _ := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !strings.EqualFold(scheme, "bearer") || token == "" {
				return reject("token_missing", domain.ErrTokenMissing)
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				return reject("token_invalid", domain.ErrTokenInvalid)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return reject("user_gone", domain.ErrTokenInvalid)
				}
				return fmt.Errorf("auth: resolve user: %w", err)
			}

			SetCaller(c, domain.Caller{ID: user.ID, Username: user.Username})
			return next(c)
		}
	}
}

func reject(reason string, err error) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	return err
}

// SetCaller stores the authenticated identity for downstream handlers.
func SetCaller(c echo.Context, caller domain.Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the identity stored by Auth.
func CallerFrom(c echo.Context) (domain.Caller, bool) {
	caller, ok := c.Get(callerKey).(domain.Caller)
	return caller, ok
}
