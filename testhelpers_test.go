//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/application"
	"github.com/mosikk/nosql-airbnb/internal/cache"
	"github.com/mosikk/nosql-airbnb/internal/config"
	bookingDomain "github.com/mosikk/nosql-airbnb/internal/domain/booking"
	roomDomain "github.com/mosikk/nosql-airbnb/internal/domain/room"
	"github.com/mosikk/nosql-airbnb/internal/events"
	"github.com/mosikk/nosql-airbnb/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	Mongo   *mongo.Client
	DB      *mongo.Database
	Redis   *redis.Client
	Cleanup func()
}

// bookingStack holds the wired-up services under test.
type bookingStack struct {
	Clients  *application.ClientService
	Rooms    *application.RoomService
	Bookings *application.BookingService
	Locker   *repository.MongoRoomLocker
	Cache    *cache.Store
}

// setupContainers starts MongoDB and Redis testcontainers and returns
// connected clients.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	mongoReq := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}
	mongoContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: mongoReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MongoDB container")

	mongoHost, err := mongoContainer.Host(ctx)
	require.NoError(t, err)
	mongoPort, err := mongoContainer.MappedPort(ctx, "27017")
	require.NoError(t, err)

	mongoCfg := config.MongoConfig{
		URI:      fmt.Sprintf("mongodb://%s:%s", mongoHost, mongoPort.Port()),
		Database: "airbnb_test",
		Timeout:  10 * time.Second,
	}

	// Poll until the driver can actually connect and ping.
	var client *mongo.Client
	require.Eventually(t, func() bool {
		var err error
		client, err = repository.Connect(ctx, mongoCfg)
		return err == nil
	}, 30*time.Second, 1*time.Second, "MongoDB not ready for connections")

	db := client.Database(mongoCfg.Database)
	require.NoError(t, repository.EnsureIndexes(ctx, db))

	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: redisReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start Redis container")

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := cache.NewRedisClient(config.RedisConfig{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})
	require.NotNil(t, rdb, "Redis not reachable")

	cleanup := func() {
		_ = client.Disconnect(ctx)
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate MongoDB container: %v", err)
		}
	}

	return &testInfra{
		Mongo:   client,
		DB:      db,
		Redis:   rdb,
		Cleanup: cleanup,
	}
}

// memoryIndex answers overlap and search queries from memory so the tests
// exercise the record store and cache without an Elasticsearch container.
type memoryIndex struct {
	bookings []*bookingDomain.Booking
}

func (i *memoryIndex) Index(_ context.Context, b *bookingDomain.Booking) error {
	i.bookings = append(i.bookings, b)
	return nil
}

func (i *memoryIndex) FindOverlapping(_ context.Context, roomID primitive.ObjectID, start, end time.Time) ([]*bookingDomain.Booking, error) {
	var out []*bookingDomain.Booking
	for _, b := range i.bookings {
		if b.RoomID() == roomID && b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

type memoryRoomIndex struct {
	rooms []*roomDomain.Room
}

func (i *memoryRoomIndex) Index(_ context.Context, r *roomDomain.Room) error {
	i.rooms = append(i.rooms, r)
	return nil
}

func (i *memoryRoomIndex) FindBy(_ context.Context, field roomDomain.SearchField, term string) ([]*roomDomain.Room, error) {
	var out []*roomDomain.Room
	for _, r := range i.rooms {
		switch {
		case field == roomDomain.FieldCountry && r.Country() == term,
			field == roomDomain.FieldCity && r.City() == term,
			field == roomDomain.FieldName && r.Name() == term,
			field == roomDomain.FieldAddress && r.Address() == term:
			out = append(out, r)
		}
	}
	return out, nil
}

// setupBookingStack wires the services over the containerized Mongo and Redis
// with an in-memory availability index.
func setupBookingStack(t *testing.T, infra *testInfra) *bookingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	store := cache.NewStore(infra.Redis, 60*time.Second, logger)
	publisher := events.NewPublisher(nil, "booking.events", logger) // disabled

	clientRepo := repository.NewMongoClientRepository(infra.DB)
	roomRepo := repository.NewMongoRoomRepository(infra.DB)
	bookingRepo := repository.NewMongoBookingRepository(infra.DB)
	locker := repository.NewMongoRoomLocker(infra.DB)
	index := &memoryIndex{}
	roomIndex := &memoryRoomIndex{}

	return &bookingStack{
		Clients:  application.NewClientService(clientRepo, store, logger),
		Rooms:    application.NewRoomService(roomRepo, roomIndex, store, logger),
		Bookings: application.NewBookingService(bookingRepo, clientRepo, roomRepo, index, locker, store, publisher, logger),
		Locker:   locker,
		Cache:    store,
	}
}
