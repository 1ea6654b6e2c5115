package search

import (
	"context"
	"encoding/json"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/mosikk/nosql-airbnb/internal/domain"
	bookingDomain "github.com/mosikk/nosql-airbnb/internal/domain/booking"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bookingDoc is the booking document shape held in the index.
type bookingDoc struct {
	ClientID string    `json:"client_id"`
	RoomID   string    `json:"room_id"`
	IsPaid   bool      `json:"is_paid"`
	StartDt  time.Time `json:"start_dt"`
	EndDt    time.Time `json:"end_dt"`
}

// BookingIndex implements booking.AvailabilityIndex on Elasticsearch.
type BookingIndex struct {
	es    *elasticsearch.Client
	index string
}

// NewBookingIndex creates a BookingIndex writing to the named index.
func NewBookingIndex(es *elasticsearch.Client, index string) *BookingIndex {
	return &BookingIndex{es: es, index: index}
}

// Index propagates a booking into the availability index under its id.
func (i *BookingIndex) Index(ctx context.Context, b *bookingDomain.Booking) error {
	doc := bookingDoc{
		ClientID: b.ClientID().Hex(),
		RoomID:   b.RoomID().Hex(),
		IsPaid:   b.IsPaid(),
		StartDt:  b.StartDt(),
		EndDt:    b.EndDt(),
	}
	return indexDocument(ctx, i.es, i.index, b.ID().Hex(), doc)
}

// FindOverlapping returns bookings for roomID whose stay intersects
// [start, end]. The interval test is the full one: an existing booking
// conflicts when existing.start_dt <= end AND existing.end_dt >= start,
// bounds inclusive, which also catches ranges nested inside an existing stay.
func (i *BookingIndex) FindOverlapping(ctx context.Context, roomID primitive.ObjectID, start, end time.Time) ([]*bookingDomain.Booking, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"match": map[string]any{"room_id": roomID.Hex()}},
					map[string]any{"range": map[string]any{"start_dt": map[string]any{"lte": end}}},
					map[string]any{"range": map[string]any{"end_dt": map[string]any{"gte": start}}},
				},
			},
		},
	}

	hits, err := runSearch(ctx, i.es, i.index, query)
	if err != nil {
		return nil, err
	}

	bookings := make([]*bookingDomain.Booking, 0, len(hits))
	for _, hit := range hits {
		b, err := hitToBooking(hit)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func hitToBooking(hit searchHit) (*bookingDomain.Booking, error) {
	var doc bookingDoc
	if err := json.Unmarshal(hit.Source, &doc); err != nil {
		return nil, domain.NewMalformedRecordError("indexed booking", err)
	}
	id, err := primitive.ObjectIDFromHex(hit.ID)
	if err != nil {
		return nil, domain.NewMalformedRecordError("indexed booking", err)
	}
	clientID, err := primitive.ObjectIDFromHex(doc.ClientID)
	if err != nil {
		return nil, domain.NewMalformedRecordError("indexed booking", err)
	}
	roomID, err := primitive.ObjectIDFromHex(doc.RoomID)
	if err != nil {
		return nil, domain.NewMalformedRecordError("indexed booking", err)
	}
	return bookingDomain.Reconstruct(id, clientID, roomID, doc.IsPaid, doc.StartDt, doc.EndDt), nil
}
