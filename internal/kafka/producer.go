// Package kafka publishes storefront activity events to Kafka.
package kafka

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"storefront/internal/activity"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Producer is an activity.Publisher backed by a Kafka producer.
type Producer struct {
	producer *kafka.Producer
	config   *Config
	logger   *slog.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(config *Config, logger *slog.Logger) (*Producer, error) {
	producerConfig := &kafka.ConfigMap{
		"bootstrap.servers":                     config.Brokers,
		"enable.idempotence":                    config.EnableIdempotence,
		"acks":                                  config.Acks,
		"max.in.flight.requests.per.connection": 5,
		"client.id":                             "storefront",
	}

	p, err := kafka.NewProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	producer := &Producer{
		producer: p,
		config:   config,
		logger:   logger,
	}

	go producer.handleDeliveryReports()

	logger.Info("Kafka producer initialized",
		"brokers", config.Brokers,
		"topic", config.ActivityTopic,
		"idempotence", config.EnableIdempotence)

	return producer, nil
}

// Publish enqueues an activity event. Delivery is reported asynchronously.
func (p *Producer) Publish(event activity.Event) error {
	msg, err := newMessage(p.config.ActivityTopic, event)
	if err != nil {
		return err
	}

	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	p.logger.Debug("Activity event queued",
		"topic", p.config.ActivityTopic,
		"type", event.Type,
		"id", event.ID)

	return nil
}

// newMessage keys messages by event type so one type stays ordered
// within its partition.
func newMessage(topic string, event activity.Event) (*kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(event.Type),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}, nil
}

// handleDeliveryReports processes asynchronous delivery reports
func (p *Producer) handleDeliveryReports() {
	for e := range p.producer.Events() {
		ev, ok := e.(*kafka.Message)
		if !ok {
			continue
		}
		if ev.TopicPartition.Error != nil {
			p.logger.Error("Activity delivery failed",
				"topic", *ev.TopicPartition.Topic,
				"error", ev.TopicPartition.Error)
			continue
		}
		p.logger.Debug("Activity delivered",
			"topic", *ev.TopicPartition.Topic,
			"partition", ev.TopicPartition.Partition,
			"offset", ev.TopicPartition.Offset)
	}
}

// Close flushes pending events (10 second timeout) and closes the producer.
func (p *Producer) Close() {
	if remaining := p.producer.Flush(10000); remaining > 0 {
		p.logger.Error("Some activity events were not delivered", "count", remaining)
	}
	p.producer.Close()
	p.logger.Info("Kafka producer closed")
}
