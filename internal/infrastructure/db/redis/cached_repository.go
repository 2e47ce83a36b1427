package redis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
	"github.com/99minutos/car-booking/internal/pkg/metrics"
)

// Cache abstracts the booking snapshot store.
type Cache interface {
	Get(ctx context.Context, id int64) (*domain.Booking, bool, error)
	// Fill stores a read snapshot unless the key already holds a value or
	// a stale marker.
	Fill(ctx context.Context, b *domain.Booking) error
	// Invalidate marks the entry stale so pending fills are dropped.
	Invalidate(ctx context.Context, id int64) error
}

// CachedBookingRepository decorates a BookingRepository with a read-through
// cache on FindByID. The wrapped repository stays authoritative: cache
// failures are logged and never fail the call.
//
// Writes go to the store first and then invalidate the entry. Reads fill the
// cache with Fill, so a snapshot read before a concurrent write is never
// cached after it.
type CachedBookingRepository struct {
	ports.BookingRepository
	cache Cache
	log   zerolog.Logger
}

func NewCachedBookingRepository(next ports.BookingRepository, cache Cache, log zerolog.Logger) *CachedBookingRepository {
	return &CachedBookingRepository{BookingRepository: next, cache: cache, log: log}
}

func (r *CachedBookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	cached, ok, err := r.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.BookingCacheTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Int64("booking_id", id).Msg("booking cache read failed, falling back to store")
	case ok:
		metrics.BookingCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.BookingCacheTotal.WithLabelValues("miss").Inc()
	}

	b, err := r.BookingRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Fill(ctx, b); err != nil {
		r.log.Warn().Err(err).Int64("booking_id", id).Msg("booking cache fill failed")
	}
	return b, nil
}

func (r *CachedBookingRepository) UpdateOwned(ctx context.Context, id, ownerID int64, changes domain.BookingChanges) (*domain.Booking, error) {
	updated, err := r.BookingRepository.UpdateOwned(ctx, id, ownerID, changes)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return updated, nil
}

func (r *CachedBookingRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	if err := r.BookingRepository.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

// evict marks the entry stale; it only logs when Redis is unreachable. The
// store write already happened, so a cancelled request must not skip it.
func (r *CachedBookingRepository) evict(ctx context.Context, id int64) {
	if err := r.cache.Invalidate(context.WithoutCancel(ctx), id); err != nil {
		r.log.Warn().Err(err).Int64("booking_id", id).Msg("booking cache invalidation failed")
	}
}
