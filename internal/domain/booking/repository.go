package booking

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the record store contract for booking aggregates. The
// record store is authoritative; the availability index is not.
type Repository interface {
	// Insert persists a new booking under its pre-assigned identifier.
	Insert(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)

	// Replace atomically swaps the stored booking for the given one,
	// matched by identifier. Last write wins.
	Replace(ctx context.Context, b *Booking) error
}

// AvailabilityIndex is the secondary, eventually-consistent index used to
// answer range-overlap queries. An index that has never been created is
// reported as vacuously empty by FindOverlapping (the bootstrap case), which
// is distinct from an infrastructure failure.
type AvailabilityIndex interface {
	// Index propagates a booking document into the index under its id.
	Index(ctx context.Context, b *Booking) error

	// FindOverlapping returns bookings for roomID whose [start_dt, end_dt]
	// interval intersects [start, end], bounds inclusive on both sides.
	FindOverlapping(ctx context.Context, roomID primitive.ObjectID, start, end time.Time) ([]*Booking, error)
}

// RoomLocker serializes admission for a single room across processes,
// closing the check-then-act window between the availability query and the
// store/index writes.
type RoomLocker interface {
	// Acquire takes the advisory lock for roomID. A held lock is reported
	// as a room-unavailable conflict rather than blocking.
	Acquire(ctx context.Context, roomID primitive.ObjectID) error

	// Release frees the advisory lock for roomID.
	Release(ctx context.Context, roomID primitive.ObjectID) error
}
