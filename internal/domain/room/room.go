package room

import (
	"github.com/mosikk/nosql-airbnb/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room is a bookable listing. Immutable after creation.
type Room struct {
	id          primitive.ObjectID
	name        string
	country     string
	city        string
	address     string
	description string
}

// NewRoom creates a room with a fresh identifier.
func NewRoom(name, country, city, address, description string) (*Room, error) {
	if name == "" {
		return nil, domain.NewValidationError("room name is required")
	}
	if address == "" {
		return nil, domain.NewValidationError("room address is required")
	}
	return &Room{
		id:          primitive.NewObjectID(),
		name:        name,
		country:     country,
		city:        city,
		address:     address,
		description: description,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(id primitive.ObjectID, name, country, city, address, description string) *Room {
	return &Room{
		id:          id,
		name:        name,
		country:     country,
		city:        city,
		address:     address,
		description: description,
	}
}

func (r *Room) ID() primitive.ObjectID { return r.id }
func (r *Room) Name() string           { return r.name }
func (r *Room) Country() string        { return r.country }
func (r *Room) City() string           { return r.city }
func (r *Room) Address() string        { return r.address }
func (r *Room) Description() string    { return r.description }
