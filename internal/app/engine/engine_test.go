package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventv1 "github.com/mrmh13801225/matching-engine/internal/domain/event/v1"
	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
	requestv1 "github.com/mrmh13801225/matching-engine/internal/domain/request/v1"
	securityv1 "github.com/mrmh13801225/matching-engine/internal/domain/security/v1"
	snapshotv1 "github.com/mrmh13801225/matching-engine/internal/domain/snapshot/v1"
	"github.com/mrmh13801225/matching-engine/internal/metrics"
	"github.com/mrmh13801225/matching-engine/internal/usecase/ledger"
	"github.com/mrmh13801225/matching-engine/internal/usecase/matcher"
	"github.com/mrmh13801225/matching-engine/pkg/config"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
)

const testISIN = "IRO1MAPN0001"

type fakeReader struct {
	requests chan *requestv1.Request
	offset   int64
	closed   bool
}

func newFakeReader() *fakeReader {
	return &fakeReader{requests: make(chan *requestv1.Request, 16)}
}

func (r *fakeReader) ReadRequest(ctx context.Context) (*requestv1.Request, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case request := <-r.requests:
		return request, nil
	}
}

func (r *fakeReader) SetOffset(offset int64) error {
	r.offset = offset
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*eventv1.Event
}

func (p *fakePublisher) Publish(ctx context.Context, events ...*eventv1.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []eventv1.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]eventv1.Type, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}
	return types
}

type fakeStore struct {
	mu        sync.Mutex
	snapshots map[string]*snapshotv1.Snapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{snapshots: make(map[string]*snapshotv1.Snapshot)}
}

func (s *fakeStore) Save(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ISIN] = snapshot
	return nil
}

func (s *fakeStore) Load(ctx context.Context, isin string) (*snapshotv1.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[isin], nil
}

type engineFixture struct {
	engine    *Engine
	reader    *fakeReader
	publisher *fakePublisher
	store     *fakeStore
	ledger    *ledger.Repository
	security  *securityv1.Security
}

func newEngineFixture(t *testing.T, store *fakeStore) *engineFixture {
	t.Helper()

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)

	f := &engineFixture{
		reader:    newFakeReader(),
		publisher: &fakePublisher{},
		store:     store,
		ledger:    ledger.NewRepository(),
		security:  securityv1.NewSecurity(testISIN, 1, 1),
	}
	if f.store == nil {
		f.store = newFakeStore()
	}

	cfg := &config.Config{
		ISIN:     testISIN,
		TickSize: 1,
		LotSize:  1,
		EngineConfig: config.EngineConfig{
			SnapshotInterval:    time.Second,
			SnapshotOffsetDelta: 1,
		},
	}

	f.engine, err = NewEngine(
		f.security,
		f.ledger,
		matcher.NewContinuous(log),
		matcher.NewAuction(log),
		f.reader,
		f.publisher,
		f.store,
		metrics.NewWithRegistry(prometheus.NewRegistry()),
		log,
		cfg,
	)
	require.NoError(t, err)
	f.engine.ctx, f.engine.cancel = context.WithCancel(context.Background())
	return f
}

func (f *engineFixture) seedLedger() {
	f.ledger.AddBroker(ledgerv1.NewBroker(1, "broker", 1_000_000))
	shareholder := ledgerv1.NewShareholder(1, "shareholder")
	shareholder.IncPosition(testISIN, 10_000)
	f.ledger.AddShareholder(shareholder)
}

func enterOrder(orderID int64, side orderbookv1.Side, quantity, price int64) *requestv1.Request {
	return &requestv1.Request{
		Kind: requestv1.KindEnterOrder,
		EnterOrder: &requestv1.EnterOrderRequest{
			RequestID:     orderID,
			EntryType:     requestv1.EntryTypeNew,
			OrderID:       orderID,
			ISIN:          testISIN,
			BrokerID:      1,
			ShareholderID: 1,
			Side:          side,
			Quantity:      quantity,
			Price:         price,
		},
	}
}

func TestEngine_ProcessRequest_EnterOrder(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()

	require.NoError(t, f.engine.processRequest(enterOrder(1, orderbookv1.SideBuy, 100, 500)))

	assert.Equal(t, []eventv1.Type{eventv1.TypeOrderAccepted}, f.publisher.types())
	assert.NotNil(t, f.security.OrderBook.FindByID(orderbookv1.SideBuy, 1))
}

func TestEngine_ProcessRequest_ExecutionEvents(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()

	require.NoError(t, f.engine.processRequest(enterOrder(1, orderbookv1.SideSell, 300, 500)))
	require.NoError(t, f.engine.processRequest(enterOrder(2, orderbookv1.SideBuy, 300, 500)))

	assert.Equal(t, []eventv1.Type{
		eventv1.TypeOrderAccepted,
		eventv1.TypeOrderAccepted,
		eventv1.TypeOrderExecuted,
	}, f.publisher.types())

	executed := f.publisher.events[2].OrderExecuted
	require.NotNil(t, executed)
	require.Len(t, executed.Trades, 1)
	assert.Equal(t, int64(500), executed.Trades[0].Price)
	assert.Equal(t, int64(300), executed.Trades[0].Quantity)
}

func TestEngine_ProcessRequest_ValidationReject(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()

	request := enterOrder(1, orderbookv1.SideBuy, 100, 500)
	request.EnterOrder.BrokerID = 99
	request.EnterOrder.Quantity = 0
	require.NoError(t, f.engine.processRequest(request))

	require.Equal(t, []eventv1.Type{eventv1.TypeOrderRejected}, f.publisher.types())
	rejected := f.publisher.events[0].OrderRejected
	require.NotNil(t, rejected)
	assert.ElementsMatch(t, []string{
		requestv1.ReasonQuantityNotPositive,
		requestv1.ReasonUnknownBrokerID,
	}, rejected.Reasons)

	// Nothing touched the book.
	assert.Empty(t, f.security.OrderBook.BuyQueue())
}

func TestEngine_ProcessRequest_CreditReject(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()

	require.NoError(t, f.engine.processRequest(enterOrder(1, orderbookv1.SideBuy, 100, 50_000)))

	require.Equal(t, []eventv1.Type{eventv1.TypeOrderRejected}, f.publisher.types())
	assert.Equal(t, []string{requestv1.ReasonBuyerHasNotEnoughCredit}, f.publisher.events[0].OrderRejected.Reasons)
}

func TestEngine_ProcessRequest_DeleteOrder(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()
	require.NoError(t, f.engine.processRequest(enterOrder(1, orderbookv1.SideBuy, 100, 500)))

	request := &requestv1.Request{
		Kind:        requestv1.KindDeleteOrder,
		DeleteOrder: &requestv1.DeleteOrderRequest{RequestID: 2, ISIN: testISIN, Side: orderbookv1.SideBuy, OrderID: 1},
	}
	require.NoError(t, f.engine.processRequest(request))

	assert.Equal(t, []eventv1.Type{eventv1.TypeOrderAccepted, eventv1.TypeOrderDeleted}, f.publisher.types())
	assert.Nil(t, f.security.OrderBook.FindByID(orderbookv1.SideBuy, 1))
}

func TestEngine_ProcessRequest_AuctionFlow(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()
	f.security.Price = 630

	toAuction := &requestv1.Request{
		Kind:        requestv1.KindChangeState,
		ChangeState: &requestv1.ChangeStateRequest{RequestID: 1, ISIN: testISIN, TargetState: matchingv1.ModeAuction},
	}
	require.NoError(t, f.engine.processRequest(toAuction))
	require.NoError(t, f.engine.processRequest(enterOrder(2, orderbookv1.SideSell, 400, 590)))
	require.NoError(t, f.engine.processRequest(enterOrder(3, orderbookv1.SideBuy, 300, 600)))

	toContinuous := &requestv1.Request{
		Kind:        requestv1.KindChangeState,
		ChangeState: &requestv1.ChangeStateRequest{RequestID: 4, ISIN: testISIN, TargetState: matchingv1.ModeContinuous},
	}
	require.NoError(t, f.engine.processRequest(toContinuous))

	assert.Equal(t, []eventv1.Type{
		eventv1.TypeStateChanged,
		eventv1.TypeOpeningPrice,
		eventv1.TypeOrderAccepted,
		eventv1.TypeOpeningPrice,
		eventv1.TypeOrderAccepted,
		eventv1.TypeStateChanged,
		eventv1.TypeTradeExecuted,
	}, f.publisher.types())

	trade := f.publisher.events[6].TradeExecuted
	require.NotNil(t, trade)
	assert.Equal(t, int64(600), trade.Price)
	assert.Equal(t, int64(300), trade.Quantity)
	assert.Equal(t, int64(600), f.security.Price)

	openingPrice := f.publisher.events[3].OpeningPrice
	require.NotNil(t, openingPrice)
	assert.Equal(t, int64(600), openingPrice.OpeningPrice)
	assert.Equal(t, int64(300), openingPrice.TradableQuantity)
}

func TestEngine_ProcessRequest_StopActivation(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()

	stop := enterOrder(1, orderbookv1.SideBuy, 100, 520)
	stop.EnterOrder.StopPrice = 510
	require.NoError(t, f.engine.processRequest(stop))

	require.NoError(t, f.engine.processRequest(enterOrder(2, orderbookv1.SideSell, 100, 515)))
	require.NoError(t, f.engine.processRequest(enterOrder(3, orderbookv1.SideBuy, 100, 515)))

	// The trade at 515 triggers the stop, which then executes against the book.
	types := f.publisher.types()
	assert.Contains(t, types, eventv1.TypeOrderActivated)
	assert.Empty(t, f.security.StopOrderBook.BuyQueue())

	broker := f.ledger.FindBrokerByID(1)
	assert.Equal(t, int64(0), broker.ReservedCredit)
}

func TestEngine_SnapshotRoundTrip(t *testing.T) {
	store := newFakeStore()
	f := newEngineFixture(t, store)
	f.seedLedger()

	require.NoError(t, f.engine.processRequest(enterOrder(1, orderbookv1.SideBuy, 100, 500)))
	require.NoError(t, f.engine.processRequest(enterOrder(2, orderbookv1.SideSell, 400, 620)))
	stop := enterOrder(3, orderbookv1.SideSell, 50, 480)
	stop.EnterOrder.StopPrice = 490
	require.NoError(t, f.engine.processRequest(stop))

	f.engine.setRequestOffset(41)
	f.engine.createAndStoreSnapshot()

	restored := newEngineFixture(t, store)
	assert.Equal(t, int64(41), restored.engine.getRequestOffset())
	assert.Equal(t, matchingv1.ModeContinuous, restored.security.Mode)

	buy := restored.security.OrderBook.FindByID(orderbookv1.SideBuy, 1)
	require.NotNil(t, buy)
	assert.Equal(t, int64(100), buy.Quantity)
	require.NotNil(t, restored.security.OrderBook.FindByID(orderbookv1.SideSell, 2))
	require.NotNil(t, restored.security.StopOrderBook.FindByID(orderbookv1.SideSell, 3))

	// Ledger state travelled with the snapshot, held credit included.
	broker := restored.ledger.FindBrokerByID(1)
	require.NotNil(t, broker)
	assert.Equal(t, int64(1_000_000-100*500), broker.Credit)
	assert.Same(t, broker, buy.Broker)
}

func TestEngine_StartStop(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.seedLedger()

	require.NoError(t, f.engine.Start(context.Background()))
	f.reader.requests <- enterOrder(1, orderbookv1.SideBuy, 100, 500)

	assert.Eventually(t, func() bool {
		return len(f.publisher.types()) == 1
	}, time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.engine.Stop(stopCtx))
	assert.True(t, f.reader.closed)
}
