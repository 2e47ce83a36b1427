// @title           Car Booking API
// @version         1.0
// @description     Accounts and car rental bookings.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/car-booking/internal/api"
	"github.com/99minutos/car-booking/internal/core/ports"
	"github.com/99minutos/car-booking/internal/core/service"
	"github.com/99minutos/car-booking/internal/infrastructure/db/mongo"
	"github.com/99minutos/car-booking/internal/infrastructure/db/redis"
	"github.com/99minutos/car-booking/internal/infrastructure/http/handlers"
	"github.com/99minutos/car-booking/internal/infrastructure/security"
	"github.com/99minutos/car-booking/internal/pkg/config"
	"github.com/99minutos/car-booking/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "car-booking",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongo.NewUserRepository(db)
	mongoBookings := mongo.NewBookingRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, mongoBookings); err != nil {
		return err
	}

	var bookings ports.BookingRepository = mongoBookings
	var rdb *goredis.Client
	if cfg.Redis.CacheTTL > 0 {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		cache := redis.NewBookingCache(rdb, cfg.Redis.CacheTTL)
		bookings = redis.NewCachedBookingRepository(mongoBookings, cache, log)
		log.Info().Dur("ttl", cfg.Redis.CacheTTL).Msg("booking cache enabled")
	}

	tokens, err := security.NewJWTService(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	e := api.NewRouter(api.Dependencies{
		Accounts:   service.NewAccountService(users, hasher, tokens, log),
		Bookings:   service.NewBookingService(bookings, users, log),
		Tokens:     tokens,
		Users:      users,
		Readiness:  handlers.NewHealthDependenciesHandler(db, rdb),
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
		Logger:     log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
