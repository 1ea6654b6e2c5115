// Package events publishes booking lifecycle events to Kafka. Publishing is
// strictly post-commit and fire-and-forget: a broker failure is logged, never
// surfaced to the caller.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types emitted by the admission service.
const (
	BookingCreated = "booking.created"
	BookingPaid    = "booking.paid"
)

// Envelope is the wire format for booking events.
type Envelope struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// Publisher writes booking events to a single Kafka topic, keyed by booking
// id so events for one booking stay ordered.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewPublisher creates a Publisher. An empty broker list yields a disabled
// publisher whose Publish is a no-op.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{logger: logger}
	}
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireOne,
			Async:        true,
		},
		logger: logger,
	}
}

// Publish emits one event. Failures are logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, eventType, key string, data any) {
	if p.writer == nil {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		p.logger.Error("failed to encode event payload",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	env := Envelope{
		ID:     uuid.NewString(),
		Source: "nosql-airbnb",
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("failed to encode event envelope",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.writer.WriteMessages(ctx, kafkago.Message{Key: []byte(key), Value: value}); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
