package repository

import (
	"context"
	"errors"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	clientDomain "github.com/mosikk/nosql-airbnb/internal/domain/client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClientModel is the Mongo document for the clients collection.
type ClientModel struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// MongoClientRepository is the Mongo-backed client.Repository.
type MongoClientRepository struct {
	coll *mongo.Collection
}

// NewMongoClientRepository creates a MongoClientRepository on the given database.
func NewMongoClientRepository(db *mongo.Database) *MongoClientRepository {
	return &MongoClientRepository{coll: db.Collection(collClients)}
}

// Insert persists a new client.
func (r *MongoClientRepository) Insert(ctx context.Context, c *clientDomain.Client) error {
	model := ClientModel{ID: c.ID(), Name: c.Name()}
	if _, err := r.coll.InsertOne(ctx, model); err != nil {
		return domain.NewStoreError("insert client", err)
	}
	return nil
}

// FindByID retrieves a client by identifier.
func (r *MongoClientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*clientDomain.Client, error) {
	var model ClientModel
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&model)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.NewNotFoundError("client", id.Hex())
	case err != nil:
		return nil, decodeOrStoreError("client", "find client", err)
	}
	return clientDomain.Reconstruct(model.ID, model.Name), nil
}

// decodeOrStoreError classifies a FindOne failure: bson decode problems are
// malformed records, everything else is a store failure.
func decodeOrStoreError(entity, op string, err error) error {
	var decodeErr *bsoncodec.DecodeError
	if errors.As(err, &decodeErr) {
		return domain.NewMalformedRecordError(entity, err)
	}
	return domain.NewStoreError(op, err)
}
