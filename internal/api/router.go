package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/car-booking/docs"
	"github.com/99minutos/car-booking/internal/api/handler"
	"github.com/99minutos/car-booking/internal/api/middleware"
	"github.com/99minutos/car-booking/internal/core/ports"
	"github.com/99minutos/car-booking/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "http"

// Dependencies holds everything the router needs. Readiness is optional; a
// nil Registerer or Gatherer falls back to the prometheus defaults.
type Dependencies struct {
	Accounts ports.AccountService
	Bookings ports.BookingService
	Tokens   ports.TokenService
	Users    middleware.UserLookup

	Readiness *handlers.HealthDependenciesHandler

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	accountHandler := handler.NewAccountHandler(deps.Accounts)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	authMiddleware := middleware.Auth(deps.Tokens, deps.Users)

	// Routes are served both at the root and under /api.
	for _, prefix := range []string{"", "/api"} {
		g := e.Group(prefix)

		g.POST("/auth/signup", accountHandler.Signup)
		g.POST("/auth/login", accountHandler.Login)

		bookings := g.Group("/bookings", authMiddleware)
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.Get)
		bookings.PUT("/:bookingId", bookingHandler.Update)
		bookings.DELETE("/:bookingId", bookingHandler.Delete)
	}

	// --- Health checks (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness) // liveness
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness
	}

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured access line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
