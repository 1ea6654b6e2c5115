package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mosikk/nosql-airbnb/internal/application"
	"github.com/mosikk/nosql-airbnb/internal/cache"
	"github.com/mosikk/nosql-airbnb/internal/config"
	"github.com/mosikk/nosql-airbnb/internal/events"
	"github.com/mosikk/nosql-airbnb/internal/handler"
	"github.com/mosikk/nosql-airbnb/internal/logger"
	"github.com/mosikk/nosql-airbnb/internal/middleware"
	"github.com/mosikk/nosql-airbnb/internal/repository"
	"github.com/mosikk/nosql-airbnb/internal/search"
	"go.uber.org/zap"
)

const serviceName = "nosql-airbnb"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName, zap.String("port", cfg.Port))

	// All store/index/cache connections are process-wide singletons: created
	// here, closed on shutdown, injected everywhere else.
	ctx := context.Background()

	mongoClient, err := repository.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("failed to connect to record store", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	db := mongoClient.Database(cfg.Mongo.Database)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("failed to ensure store indexes", zap.Error(err))
	}

	esClient, err := search.NewClient(cfg.Elastic)
	if err != nil {
		log.Fatal("failed to create availability index client", zap.Error(err))
	}

	redisClient := cache.NewRedisClient(cfg.Redis)
	if redisClient == nil {
		log.Warn("cache unreachable, running uncached")
	} else {
		defer func() { _ = redisClient.Close() }()
	}
	entityCache := cache.NewStore(redisClient, cfg.Redis.TTL, log)

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	defer func() { _ = publisher.Close() }()

	clientRepo := repository.NewMongoClientRepository(db)
	roomRepo := repository.NewMongoRoomRepository(db)
	bookingRepo := repository.NewMongoBookingRepository(db)
	roomLocker := repository.NewMongoRoomLocker(db)

	bookingIndex := search.NewBookingIndex(esClient, cfg.Elastic.BookingIndex)
	roomIndex := search.NewRoomIndex(esClient, cfg.Elastic.RoomIndex)

	clientService := application.NewClientService(clientRepo, entityCache, log)
	roomService := application.NewRoomService(roomRepo, roomIndex, entityCache, log)
	bookingService := application.NewBookingService(
		bookingRepo,
		clientRepo,
		roomRepo,
		bookingIndex,
		roomLocker,
		entityCache,
		publisher,
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	handler.NewHealthHandler(mongoClient, serviceName).RegisterRoutes(router)

	api := router.Group("/airbnb")
	handler.NewClientHandler(clientService).RegisterRoutes(api)
	handler.NewRoomHandler(roomService).RegisterRoutes(api)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
