package booking

import (
	"time"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is the aggregate root for a room reservation. A booking is created
// only through the admission workflow, mutated exactly once by Pay, and never
// deleted in normal operation.
type Booking struct {
	id       primitive.ObjectID
	clientID primitive.ObjectID
	roomID   primitive.ObjectID
	isPaid   bool
	startDt  time.Time
	endDt    time.Time
}

// NewBooking creates a booking with a fresh identifier. Referential integrity
// of clientID/roomID is the admission service's responsibility; the aggregate
// only validates the interval itself.
func NewBooking(clientID, roomID primitive.ObjectID, isPaid bool, startDt, endDt time.Time) (*Booking, error) {
	if clientID.IsZero() {
		return nil, domain.NewValidationError("client ID is required")
	}
	if roomID.IsZero() {
		return nil, domain.NewValidationError("room ID is required")
	}
	if endDt.Before(startDt) {
		return nil, domain.NewValidationError("end date must not precede start date")
	}

	return &Booking{
		id:       primitive.NewObjectID(),
		clientID: clientID,
		roomID:   roomID,
		isPaid:   isPaid,
		startDt:  startDt.UTC(),
		endDt:    endDt.UTC(),
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id, clientID, roomID primitive.ObjectID, isPaid bool, startDt, endDt time.Time) *Booking {
	return &Booking{
		id:       id,
		clientID: clientID,
		roomID:   roomID,
		isPaid:   isPaid,
		startDt:  startDt,
		endDt:    endDt,
	}
}

func (b *Booking) ID() primitive.ObjectID       { return b.id }
func (b *Booking) ClientID() primitive.ObjectID { return b.clientID }
func (b *Booking) RoomID() primitive.ObjectID   { return b.roomID }
func (b *Booking) IsPaid() bool                 { return b.isPaid }
func (b *Booking) StartDt() time.Time           { return b.startDt }
func (b *Booking) EndDt() time.Time             { return b.endDt }

// Pay flips the paid flag. The transition is one-way: paying an already-paid
// booking is a conflict error, never a silent success.
func (b *Booking) Pay() error {
	if b.isPaid {
		return domain.NewAlreadyPaidError(b.id.Hex())
	}
	b.isPaid = true
	return nil
}

// Overlaps reports whether the booking's stay intersects [start, end].
// Intervals are closed on both ends, so touching endpoints conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.startDt.After(end) && !b.endDt.Before(start)
}
