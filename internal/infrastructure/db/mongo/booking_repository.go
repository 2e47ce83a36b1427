package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/car-booking/internal/core/domain"
)

const collectionBookings = "bookings"

type BookingRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		col: db.Collection(collectionBookings),
		ids: newSequence(db, collectionBookings),
	}
}

type mongoBooking struct {
	ID         int64     `bson:"_id"`
	OwnerID    int64     `bson:"owner_id"`
	CarName    string    `bson:"car_name"`
	Days       int       `bson:"days"`
	RentPerDay float64   `bson:"rent_per_day"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (b mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		CarName:    b.CarName,
		Days:       b.Days,
		RentPerDay: b.RentPerDay,
		Status:     domain.BookingStatus(b.Status),
		CreatedAt:  b.CreatedAt.UTC(),
		UpdatedAt:  b.UpdatedAt.UTC(),
	}
}

// Create inserts a new booking document under a freshly allocated id.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoBooking{
		ID:         id,
		OwnerID:    b.OwnerID,
		CarName:    b.CarName,
		Days:       b.Days,
		RentPerDay: b.RentPerDay,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a booking regardless of owner.
func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoBooking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByOwner returns every booking of ownerID ordered by id.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBooking
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	out := make([]*domain.Booking, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// UpdateOwned applies changes with a single findOneAndUpdate filtered on both
// id and owner, so ownership cannot change between check and write.
func (r *BookingRepository) UpdateOwned(ctx context.Context, id, ownerID int64, c domain.BookingChanges) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": c.UpdatedAt.UTC()}
	if c.CarName != nil {
		set["car_name"] = *c.CarName
	}
	if c.Days != nil {
		set["days"] = *c.Days
	}
	if c.RentPerDay != nil {
		set["rent_per_day"] = *c.RentPerDay
	}
	if c.Status != nil {
		set["status"] = string(*c.Status)
	}

	var doc mongoBooking
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return doc.toDomain(), nil
}

// DeleteOwned removes the booking only if ownerID still owns it.
func (r *BookingRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the bookings collection.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
