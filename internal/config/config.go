package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServiceConfig holds all configuration for the booking platform service.
type ServiceConfig struct {
	Port   string
	AppEnv string

	Mongo   MongoConfig
	Elastic ElasticConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
}

// MongoConfig configures the record store connection.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// ElasticConfig configures the availability index connection.
type ElasticConfig struct {
	Addresses    []string
	BookingIndex string
	RoomIndex    string
}

// RedisConfig configures the entity cache. TTL applies to every entity kind.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig configures the booking event publisher. An empty broker list
// disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads configuration from AIRBNB_-prefixed environment variables with
// sane defaults for local development.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("AIRBNB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", ":8000")
	v.SetDefault("app_env", "development")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "airbnb")
	v.SetDefault("mongo.timeout", "5s")

	v.SetDefault("elastic.addresses", "http://localhost:9200")
	v.SetDefault("elastic.booking_index", "bookings")
	v.SetDefault("elastic.room_index", "rooms")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "60s")

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "booking.events")

	return &ServiceConfig{
		Port:   v.GetString("port"),
		AppEnv: v.GetString("app_env"),
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
			Timeout:  v.GetDuration("mongo.timeout"),
		},
		Elastic: ElasticConfig{
			Addresses:    splitList(v.GetString("elastic.addresses")),
			BookingIndex: v.GetString("elastic.booking_index"),
			RoomIndex:    v.GetString("elastic.room_index"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
