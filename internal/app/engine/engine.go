package engine

import (
	"context"
	"sync"
	"time"

	eventv1 "github.com/mrmh13801225/matching-engine/internal/domain/event/v1"
	securityv1 "github.com/mrmh13801225/matching-engine/internal/domain/security/v1"
	snapshotv1 "github.com/mrmh13801225/matching-engine/internal/domain/snapshot/v1"
	"github.com/mrmh13801225/matching-engine/internal/metrics"
	"github.com/mrmh13801225/matching-engine/internal/usecase/ledger"
	orderreader "github.com/mrmh13801225/matching-engine/internal/usecase/order-reader"
	"github.com/mrmh13801225/matching-engine/pkg/config"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
)

// Engine processes the request stream against one instrument: it reads
// requests in offset order, runs them through the matching core and publishes
// the resulting events. Requests are processed one at a time; the snapshot
// manager is the only other reader of engine state.
type Engine struct {
	security       *securityv1.Security
	ledger         *ledger.Repository
	matcher        securityv1.Matcher
	auctionMatcher securityv1.AuctionMatcher
	reader         orderreader.RequestReader
	publisher      eventv1.Publisher
	snapshotStore  snapshotv1.Store
	metrics        *metrics.Metrics
	logger         *logger.Logger
	config         *config.Config

	mu                 sync.RWMutex
	requestOffset      int64
	lastSnapshotOffset int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an engine and restores the instrument from the latest
// snapshot when one exists.
func NewEngine(
	security *securityv1.Security,
	ledgerRepo *ledger.Repository,
	matcher securityv1.Matcher,
	auctionMatcher securityv1.AuctionMatcher,
	reader orderreader.RequestReader,
	publisher eventv1.Publisher,
	snapshotStore snapshotv1.Store,
	m *metrics.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) (*Engine, error) {
	e := &Engine{
		security:       security,
		ledger:         ledgerRepo,
		matcher:        matcher,
		auctionMatcher: auctionMatcher,
		reader:         reader,
		publisher:      publisher,
		snapshotStore:  snapshotStore,
		metrics:        m,
		logger:         log,
		config:         cfg,
		requestOffset:  -1,
	}

	if err := e.loadSnapshot(context.Background()); err != nil {
		return nil, err
	}
	return e, nil
}

// Start launches the request processor and the snapshot manager.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runRequestProcessor()
	go e.runSnapshotManager()

	e.logger.Info("Engine started", logger.Field{
		Key:   "isin",
		Value: e.config.ISIN,
	})
	return nil
}

// Stop shuts the engine down, waiting for the running goroutines up to the
// given context's deadline.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

func (e *Engine) runRequestProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting request processor", logger.Field{
		Key:   "isin",
		Value: e.config.ISIN,
	})

	currentOffset := e.getRequestOffset()
	if currentOffset >= 0 {
		currentOffset++
	} else {
		currentOffset = 0
	}
	if err := e.reader.SetOffset(currentOffset); err != nil {
		e.logger.Error(err, logger.Field{Key: "action", Value: "set_request_offset"})
	}

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Request processor shutting down")
			e.reader.Close()
			return
		default:
			request, err := e.reader.ReadRequest(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_request",
				})
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if err := e.processRequest(request); err != nil {
				e.metrics.ProcessingFailures.Inc()
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "process_request",
				}, logger.Field{
					Key:   "offset",
					Value: request.Offset,
				})
			}

			e.setRequestOffset(request.Offset)
		}
	}
}

func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.config.SnapshotInterval)
	defer ticker.Stop()

	e.logger.Info("Starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				e.createAndStoreSnapshot()
			}
		}
	}
}

func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.requestOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset < 0 {
		return false
	}
	return currentOffset-lastSnapshotOffset >= e.config.SnapshotOffsetDelta
}

func (e *Engine) getRequestOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.requestOffset
}

func (e *Engine) setRequestOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requestOffset = offset
}
