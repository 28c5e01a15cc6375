package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	eventv1 "github.com/mrmh13801225/matching-engine/internal/domain/event/v1"
	"github.com/mrmh13801225/matching-engine/pkg/config"
	"github.com/mrmh13801225/matching-engine/pkg/errors"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

// Publisher writes engine events to the event topic. Events of one request
// are written in a single batch so downstream consumers see them in order.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a Kafka publisher for the event topic.
func NewPublisher(cfg config.EventPublisherConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// Publish stamps each event with an id and timestamp and writes the batch.
func (p *Publisher) Publish(ctx context.Context, events ...*eventv1.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		event.ID = ulid.Make().String()
		event.OccurredAt = time.Now().UTC()

		value, err := json.Marshal(event)
		if err != nil {
			p.logger.Error(err,
				logger.Field{Key: "operation", Value: "Publish"},
				logger.Field{Key: "eventType", Value: event.Type},
			)
			return errors.NewTracer("event_publisher_encode").Wrap(err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.ID),
			Value: value,
		})
	}

	if err := p.kafkaWriter.WriteMessages(ctx, messages...); err != nil {
		p.logger.Error(err, logger.Field{Key: "operation", Value: "Publish"})
		return errors.NewTracer("event_publisher_write").Wrap(err)
	}
	return nil
}

// Close shuts the underlying Kafka writer down.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
