package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/mrmh13801225/matching-engine/internal/domain/snapshot/v1"
	"github.com/mrmh13801225/matching-engine/pkg/errors"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
	"github.com/mrmh13801225/matching-engine/pkg/redis"
)

// Store persists engine snapshots in Redis, one key per instrument.
type Store struct {
	prefix      string
	logger      logger.Interface
	redisClient redis.Client
}

// NewStore creates a snapshot store on the given Redis client.
func NewStore(redisClient redis.Client, prefix string, log logger.Interface) *Store {
	return &Store{
		prefix:      prefix,
		redisClient: redisClient,
		logger:      log,
	}
}

func (s *Store) key(isin string) string {
	return s.prefix + isin
}

// Save serializes the snapshot and stores it under the instrument's key.
func (s *Store) Save(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "isin", Value: snapshot.ISIN})
		return errors.NewTracer("snapshot_marshal").Wrap(err)
	}

	if err := s.redisClient.Set(ctx, s.key(snapshot.ISIN), buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "isin", Value: snapshot.ISIN})
		return errors.NewTracer("snapshot_store").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Snapshot stored",
		logger.Field{Key: "isin", Value: snapshot.ISIN},
		logger.Field{Key: "offset", Value: snapshot.Offset},
	)
	return nil
}

// Load restores the snapshot of the given instrument. A missing key returns
// nil without error.
func (s *Store) Load(ctx context.Context, isin string) (*snapshotv1.Snapshot, error) {
	val, err := s.redisClient.Get(ctx, s.key(isin))
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "isin", Value: isin})
		return nil, errors.NewTracer("snapshot_load").Wrap(err)
	}
	if val == "" {
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "isin", Value: isin})
		return nil, errors.NewTracer("snapshot_unmarshal").Wrap(err)
	}
	return &snapshot, nil
}
