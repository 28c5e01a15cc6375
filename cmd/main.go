package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrmh13801225/matching-engine/internal/app/engine"
	securityv1 "github.com/mrmh13801225/matching-engine/internal/domain/security/v1"
	"github.com/mrmh13801225/matching-engine/internal/metrics"
	eventpublisher "github.com/mrmh13801225/matching-engine/internal/usecase/event-publisher"
	"github.com/mrmh13801225/matching-engine/internal/usecase/ledger"
	"github.com/mrmh13801225/matching-engine/internal/usecase/matcher"
	orderreader "github.com/mrmh13801225/matching-engine/internal/usecase/order-reader"
	"github.com/mrmh13801225/matching-engine/internal/usecase/snapshot"
	"github.com/mrmh13801225/matching-engine/pkg/config"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
	"github.com/mrmh13801225/matching-engine/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initialize Redis client
	rclient := redis.NewClient(log, &cfg.Redis)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_redis",
		})
		return
	}

	// Initialize components
	security := securityv1.NewSecurity(cfg.ISIN, cfg.TickSize, cfg.LotSize)
	ledgerRepo := ledger.NewRepository()
	if cfg.LedgerSeedPath != "" {
		if err := ledgerRepo.LoadSeedFile(cfg.LedgerSeedPath); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "load_ledger_seed",
			})
			return
		}
	}
	continuousMatcher := matcher.NewContinuous(log)
	auctionMatcher := matcher.NewAuction(log)
	oReader := orderreader.NewReader(cfg.OrderReaderConfig, log)
	ePublisher := eventpublisher.NewPublisher(cfg.EventPublisherConfig, log)
	snapshotStore := snapshot.NewStore(rclient, cfg.Redis.PrefixKey, log)
	m := metrics.New()

	eng, err := engine.NewEngine(
		security,
		ledgerRepo,
		continuousMatcher,
		auctionMatcher,
		oReader,
		ePublisher,
		snapshotStore,
		m,
		log,
		cfg,
	)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "init_engine",
		})
		return
	}

	// Expose Prometheus metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{Addr: cfg.MetricsConfig.Addr, Handler: mux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "serve_metrics",
			})
		}
	}()

	// Start the engine
	if err := eng.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Matching engine started successfully", logger.Field{
		Key:   "isin",
		Value: cfg.ISIN,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the engine gracefully
	if err := eng.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_metrics_server",
		})
	}

	if err := ePublisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_event_publisher",
		})
	}

	if err := rclient.Disconnect(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "disconnect_redis",
		})
	}

	log.Info("Matching engine shutdown complete")
}
