// Package repository implements the record store contracts on MongoDB.
// The store is authoritative; every document is decoded into a typed model
// and a decode failure surfaces as a malformed-record error, never as a raw
// driver error.
package repository

import (
	"context"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collClients   = "clients"
	collRooms     = "rooms"
	collBookings  = "bookings"
	collRoomLocks = "room_locks"
)

// Connect establishes the process-wide Mongo connection and verifies it with
// a ping. The returned client is a singleton owned by main.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on: the TTL index
// that reaps abandoned room locks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collRoomLocks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// nowUTC is a seam for tests.
var nowUTC = func() time.Time { return time.Now().UTC() }
