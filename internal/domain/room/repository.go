package room

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the record store contract for rooms.
type Repository interface {
	Insert(ctx context.Context, r *Room) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Room, error)
}

// SearchField enumerates the room attributes the search index can match on.
type SearchField string

const (
	FieldName    SearchField = "name"
	FieldCountry SearchField = "country"
	FieldCity    SearchField = "city"
	FieldAddress SearchField = "address"
)

// SearchIndex is the text-search side of the availability index, used by the
// room discovery endpoints.
type SearchIndex interface {
	// Index propagates a room document into the index under its id.
	Index(ctx context.Context, r *Room) error

	// FindBy returns rooms whose field matches term.
	FindBy(ctx context.Context, field SearchField, term string) ([]*Room, error)
}
