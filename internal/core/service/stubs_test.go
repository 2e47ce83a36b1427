package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	byName  map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byName: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.nextID++
	clone := *user
	clone.ID = r.nextID
	r.byName[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byName {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubBookingRepo struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*domain.Booking
	createErr error
	writes    int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[int64]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.writes++
	r.nextID++
	clone := *b
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.OwnerID == ownerID {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateOwned mirrors the filtered findOneAndUpdate of the Mongo repository.
func (r *stubBookingRepo) UpdateOwned(_ context.Context, id, ownerID int64, c domain.BookingChanges) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok || b.OwnerID != ownerID {
		return nil, domain.ErrBookingNotFound
	}
	r.writes++
	if c.CarName != nil {
		b.CarName = *c.CarName
	}
	if c.Days != nil {
		b.Days = *c.Days
	}
	if c.RentPerDay != nil {
		b.RentPerDay = *c.RentPerDay
	}
	if c.Status != nil {
		b.Status = *c.Status
	}
	b.UpdatedAt = c.UpdatedAt
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) DeleteOwned(_ context.Context, id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok || b.OwnerID != ownerID {
		return domain.ErrBookingNotFound
	}
	r.writes++
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Security stubs
// ---------------------------------------------------------------------------

// stubHasher prefixes the password so stored digests stay readable in failures.
type stubHasher struct{ err error }

func (h stubHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func (h stubHasher) Verify(password, digest string) bool {
	return strings.TrimPrefix(digest, "hashed:") == password
}

type stubTokens struct {
	issued []ports.TokenClaims
}

func (t *stubTokens) Issue(claims ports.TokenClaims) (string, error) {
	t.issued = append(t.issued, claims)
	return "token-for-" + claims.Username, nil
}

func (t *stubTokens) Verify(string) (*ports.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
