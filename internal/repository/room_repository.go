package repository

import (
	"context"
	"errors"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	roomDomain "github.com/mosikk/nosql-airbnb/internal/domain/room"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RoomModel is the Mongo document for the rooms collection.
type RoomModel struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Country     string             `bson:"country"`
	City        string             `bson:"city"`
	Address     string             `bson:"address"`
	Description string             `bson:"description"`
}

// MongoRoomRepository is the Mongo-backed room.Repository.
type MongoRoomRepository struct {
	coll *mongo.Collection
}

// NewMongoRoomRepository creates a MongoRoomRepository on the given database.
func NewMongoRoomRepository(db *mongo.Database) *MongoRoomRepository {
	return &MongoRoomRepository{coll: db.Collection(collRooms)}
}

// Insert persists a new room.
func (r *MongoRoomRepository) Insert(ctx context.Context, rm *roomDomain.Room) error {
	model := RoomModel{
		ID:          rm.ID(),
		Name:        rm.Name(),
		Country:     rm.Country(),
		City:        rm.City(),
		Address:     rm.Address(),
		Description: rm.Description(),
	}
	if _, err := r.coll.InsertOne(ctx, model); err != nil {
		return domain.NewStoreError("insert room", err)
	}
	return nil
}

// FindByID retrieves a room by identifier.
func (r *MongoRoomRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*roomDomain.Room, error) {
	var model RoomModel
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&model)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.NewNotFoundError("room", id.Hex())
	case err != nil:
		return nil, decodeOrStoreError("room", "find room", err)
	}
	return roomDomain.Reconstruct(model.ID, model.Name, model.Country, model.City, model.Address, model.Description), nil
}
