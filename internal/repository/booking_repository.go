package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	bookingDomain "github.com/mosikk/nosql-airbnb/internal/domain/booking"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingModel is the Mongo document for the bookings collection.
type BookingModel struct {
	ID       primitive.ObjectID `bson:"_id"`
	ClientID primitive.ObjectID `bson:"client_id"`
	RoomID   primitive.ObjectID `bson:"room_id"`
	IsPaid   bool               `bson:"is_paid"`
	StartDt  time.Time          `bson:"start_dt"`
	EndDt    time.Time          `bson:"end_dt"`
}

// MongoBookingRepository is the Mongo-backed booking.Repository.
type MongoBookingRepository struct {
	coll *mongo.Collection
}

// NewMongoBookingRepository creates a MongoBookingRepository on the given database.
func NewMongoBookingRepository(db *mongo.Database) *MongoBookingRepository {
	return &MongoBookingRepository{coll: db.Collection(collBookings)}
}

// Insert persists a new booking under its pre-assigned identifier.
func (r *MongoBookingRepository) Insert(ctx context.Context, b *bookingDomain.Booking) error {
	if _, err := r.coll.InsertOne(ctx, toBookingModel(b)); err != nil {
		return domain.NewStoreError("insert booking", err)
	}
	return nil
}

// FindByID retrieves a booking by identifier.
func (r *MongoBookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&model)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.NewNotFoundError("booking", id.Hex())
	case err != nil:
		return nil, decodeOrStoreError("booking", "find booking", err)
	}
	return toDomainBooking(&model), nil
}

// Replace swaps the stored booking for the given one. Last write wins; the
// admission service compares against the loaded version before calling this.
func (r *MongoBookingRepository) Replace(ctx context.Context, b *bookingDomain.Booking) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": b.ID()}, toBookingModel(b))
	if err != nil {
		return domain.NewStoreError("replace booking", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("booking", b.ID().Hex())
	}
	return nil
}

func toBookingModel(b *bookingDomain.Booking) BookingModel {
	return BookingModel{
		ID:       b.ID(),
		ClientID: b.ClientID(),
		RoomID:   b.RoomID(),
		IsPaid:   b.IsPaid(),
		StartDt:  b.StartDt(),
		EndDt:    b.EndDt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(m.ID, m.ClientID, m.RoomID, m.IsPaid, m.StartDt.UTC(), m.EndDt.UTC())
}
