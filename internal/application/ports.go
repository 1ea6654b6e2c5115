package application

import (
	"context"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cache entity kinds. Each kind is its own key namespace.
const (
	kindClient  = "client"
	kindRoom    = "room"
	kindBooking = "booking"
)

// EntityCache is the read-through cache contract consumed by the services.
// Implementations must degrade to a miss on failure, never error out.
type EntityCache interface {
	Get(ctx context.Context, kind, id string) ([]byte, bool)
	Set(ctx context.Context, kind, id string, value []byte)
	Delete(ctx context.Context, kind, id string)
}

// EventPublisher emits post-commit events. Fire-and-forget.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, data any)
}

// parseID validates the hex identifier format before anything touches a
// store, so a malformed id can never surface as a store-level error.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NewInvalidIDError(id)
	}
	return oid, nil
}

// dateLayouts are the accepted wire formats for booking dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate parses a booking date, date-only or full timestamp.
func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError("invalid " + field + ": " + value)
}
