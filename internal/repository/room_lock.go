package repository

import (
	"context"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// lockTTL bounds how long a crashed process can hold a room lock. The TTL
// index on expires_at reaps leftovers; expired locks are also stolen inline
// so admission does not wait on the reaper cycle.
const lockTTL = 30 * time.Second

// RoomLockModel is the advisory-lock document for the room_locks collection.
// One document per locked room, keyed by the room id.
type RoomLockModel struct {
	ID        primitive.ObjectID `bson:"_id"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// MongoRoomLocker implements booking.RoomLocker with a document insert: the
// unique _id constraint on the locks collection is the serialization point,
// so the lock holds across processes, not just goroutines.
type MongoRoomLocker struct {
	coll *mongo.Collection
}

// NewMongoRoomLocker creates a MongoRoomLocker on the given database.
func NewMongoRoomLocker(db *mongo.Database) *MongoRoomLocker {
	return &MongoRoomLocker{coll: db.Collection(collRoomLocks)}
}

// Acquire takes the advisory lock for roomID. A live lock held by another
// admission in flight is reported as a room-unavailable conflict.
func (l *MongoRoomLocker) Acquire(ctx context.Context, roomID primitive.ObjectID) error {
	now := nowUTC()
	doc := RoomLockModel{ID: roomID, ExpiresAt: now.Add(lockTTL), CreatedAt: now}

	_, err := l.coll.InsertOne(ctx, doc)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return domain.NewStoreError("acquire room lock", err)
	}

	// Steal the lock only if the previous holder's lease has expired.
	res, derr := l.coll.DeleteOne(ctx, bson.M{"_id": roomID, "expires_at": bson.M{"$lt": now}})
	if derr != nil {
		return domain.NewStoreError("acquire room lock", derr)
	}
	if res.DeletedCount == 0 {
		return domain.NewUnavailableError(roomID.Hex())
	}
	if _, err := l.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewUnavailableError(roomID.Hex())
		}
		return domain.NewStoreError("acquire room lock", err)
	}
	return nil
}

// Release frees the advisory lock for roomID.
func (l *MongoRoomLocker) Release(ctx context.Context, roomID primitive.ObjectID) error {
	if _, err := l.coll.DeleteOne(ctx, bson.M{"_id": roomID}); err != nil {
		return domain.NewStoreError("release room lock", err)
	}
	return nil
}
