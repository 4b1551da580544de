// Package events publishes order-ingested notifications to Kafka for
// downstream consumers (warehouse sync, analytics). Publishing is optional;
// when disabled a no-op publisher is wired instead.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// OrderIngested is the event emitted after a webhook's records are persisted.
type OrderIngested struct {
	OriginalOrderID int64    `json:"originalOrderId"`
	OrderIDs        []string `json:"orderIds"`
	LineItems       int      `json:"lineItems"`
}

// Publisher emits pipeline events.
type Publisher interface {
	// PublishOrderIngested emits one event per processed webhook delivery.
	PublishOrderIngested(ctx context.Context, event OrderIngested) error

	// Close releases resources held by the publisher.
	Close() error
}

// kafkaPublisher implements Publisher on a kafka-go writer.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a Publisher writing to the given brokers/topic.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return &kafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// PublishOrderIngested emits one event, keyed on the storefront order number
// so all deliveries of one order land on the same partition.
func (p *kafkaPublisher) PublishOrderIngested(ctx context.Context, event OrderIngested) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OriginalOrderID, 10)),
		Value: value,
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Int64("order_number", event.OriginalOrderID).
			Msg("failed to publish order event")
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().
		Int64("order_number", event.OriginalOrderID).
		Int("line_items", event.LineItems).
		Msg("order event published")

	return nil
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// nopPublisher discards events.
type nopPublisher struct{}

// NewNopPublisher returns a Publisher that discards all events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderIngested(context.Context, OrderIngested) error { return nil }
func (nopPublisher) Close() error                                              { return nil }
