package orderreader

import (
	"context"
	"encoding/json"

	requestv1 "github.com/mrmh13801225/matching-engine/internal/domain/request/v1"
	"github.com/mrmh13801225/matching-engine/pkg/config"
	"github.com/mrmh13801225/matching-engine/pkg/errors"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes requests from the request topic.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

// NewReader creates a Kafka reader for the request topic.
func NewReader(cfg config.OrderReaderConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// SetOffset positions the reader at the given stream offset. Used after a
// snapshot restore to resume where the snapshot was taken.
func (r *Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logger.Error(err, logger.Field{Key: "operation", Value: "SetOffset"})
		return errors.NewTracer("order_reader_set_offset").Wrap(err)
	}
	return nil
}

// ReadRequest reads and decodes the next request, attaching its stream
// offset.
func (r *Reader) ReadRequest(ctx context.Context) (*requestv1.Request, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}

	var request requestv1.Request
	if err := json.Unmarshal(msg.Value, &request); err != nil {
		r.logger.Error(err,
			logger.Field{Key: "operation", Value: "ReadRequest"},
			logger.Field{Key: "offset", Value: msg.Offset},
		)
		return nil, errors.NewTracer("order_reader_decode").Wrap(err)
	}
	request.Offset = msg.Offset

	return &request, nil
}

// Close shuts the underlying Kafka reader down.
func (r *Reader) Close() error {
	return r.kafkaReader.Close()
}
