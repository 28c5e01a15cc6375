package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mrmh13801225/matching-engine/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // best effort, .env is optional

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return nil
}

// Config holds the configuration for the matching engine.
type Config struct {
	ISIN     string `env:"ISIN,required"` // Security identifier this instance matches, e.g. IRO1MAPN0001
	TickSize int64  `env:"TICK_SIZE" envDefault:"1"`
	LotSize  int64  `env:"LOT_SIZE" envDefault:"1"`

	LedgerSeedPath string `env:"LEDGER_SEED_PATH"` // Optional JSON file registering brokers and shareholders

	OrderReaderConfig    `envPrefix:"ORDER_READER_"`
	EventPublisherConfig `envPrefix:"EVENT_PUBLISHER_"`
	Redis                redis.Config `envPrefix:"REDIS_"`
	EngineConfig         `envPrefix:"ENGINE_"`
	MetricsConfig        `envPrefix:"METRICS_"`
}

// OrderReaderConfig holds the configuration for the Kafka request consumer.
type OrderReaderConfig struct {
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID" envDefault:"matching_engine"`
	Brokers []string `env:"BROKER,required"`
}

// EventPublisherConfig holds the configuration for the Kafka event producer.
type EventPublisherConfig struct {
	Topic   string   `env:"TOPIC,required"`
	Brokers []string `env:"BROKER,required"`
}

// EngineConfig holds tuning knobs of the engine loop.
type EngineConfig struct {
	SnapshotInterval    time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"30s"`
	SnapshotOffsetDelta int64         `env:"SNAPSHOT_OFFSET_DELTA" envDefault:"1000"`
}

// MetricsConfig holds the configuration for the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `env:"ADDR" envDefault:":9102"`
}
