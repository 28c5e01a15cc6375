package engine

import (
	"context"
	"time"

	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
	snapshotv1 "github.com/mrmh13801225/matching-engine/internal/domain/snapshot/v1"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
)

func (e *Engine) createAndStoreSnapshot() {
	e.mu.Lock()
	snapshot := &snapshotv1.Snapshot{
		ISIN:         e.security.ISIN,
		Offset:       e.requestOffset,
		TakenAt:      time.Now().UTC(),
		Mode:         e.security.Mode,
		Price:        e.security.Price,
		BuyOrders:    orderRecords(e.security.OrderBook.BuyQueue()),
		SellOrders:   orderRecords(e.security.OrderBook.SellQueue()),
		BuyStops:     orderRecords(e.security.StopOrderBook.BuyQueue()),
		SellStops:    orderRecords(e.security.StopOrderBook.SellQueue()),
		Brokers:      e.ledger.Brokers(),
		Shareholders: e.ledger.Shareholders(),
	}
	e.mu.Unlock()

	if err := e.snapshotStore.Save(e.ctx, snapshot); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "store_snapshot",
		})
		return
	}

	e.mu.Lock()
	e.lastSnapshotOffset = snapshot.Offset
	e.mu.Unlock()
	e.metrics.SnapshotOffset.Set(float64(snapshot.Offset))
}

func orderRecords(orders []*orderbookv1.Order) []*snapshotv1.OrderRecord {
	records := make([]*snapshotv1.OrderRecord, 0, len(orders))
	for _, order := range orders {
		records = append(records, snapshotv1.NewOrderRecord(order))
	}
	return records
}

// loadSnapshot restores the books, the ledger and the stream position from the
// latest stored snapshot. A missing snapshot leaves the engine empty, starting
// from the beginning of the request stream.
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.Load(ctx, e.security.ISIN)
	if err != nil {
		return err
	}
	if snapshot == nil {
		e.logger.Info("No snapshot found, starting fresh", logger.Field{
			Key:   "isin",
			Value: e.security.ISIN,
		})
		return nil
	}

	for _, broker := range snapshot.Brokers {
		e.ledger.AddBroker(broker)
	}
	for _, shareholder := range snapshot.Shareholders {
		e.ledger.AddShareholder(shareholder)
	}

	e.restoreBook(e.security.OrderBook, snapshot.BuyOrders)
	e.restoreBook(e.security.OrderBook, snapshot.SellOrders)
	e.restoreStopBook(snapshot.BuyStops)
	e.restoreStopBook(snapshot.SellStops)

	e.security.Mode = snapshot.Mode
	e.security.Price = snapshot.Price
	if e.security.Mode == matchingv1.ModeAuction {
		e.security.OrderBook.CalculateOpeningPrice(e.security.Price)
	}

	e.requestOffset = snapshot.Offset
	e.lastSnapshotOffset = snapshot.Offset
	e.metrics.SnapshotOffset.Set(float64(snapshot.Offset))

	e.logger.Info("Snapshot restored",
		logger.Field{Key: "isin", Value: e.security.ISIN},
		logger.Field{Key: "offset", Value: snapshot.Offset},
		logger.Field{Key: "mode", Value: string(snapshot.Mode)},
	)
	return nil
}

// restoreBook re-enqueues one side of the book. Records are stored in ranking
// order, so sequential enqueueing reproduces the original queue. The displayed
// slice is rewritten afterwards because enqueueing refreshes it.
func (e *Engine) restoreBook(book *orderbookv1.OrderBook, records []*snapshotv1.OrderRecord) {
	for _, record := range records {
		order := e.restoreOrder(record)
		if order == nil {
			continue
		}
		book.Enqueue(order)
		order.DisplayedQuantity = record.DisplayedQuantity
	}
}

func (e *Engine) restoreStopBook(records []*snapshotv1.OrderRecord) {
	for _, record := range records {
		order := e.restoreOrder(record)
		if order == nil {
			continue
		}
		e.security.StopOrderBook.Enqueue(order)
	}
}

func (e *Engine) restoreOrder(record *snapshotv1.OrderRecord) *orderbookv1.Order {
	broker := e.ledger.FindBrokerByID(record.BrokerID)
	shareholder := e.ledger.FindShareholderByID(record.ShareholderID)
	if broker == nil || shareholder == nil {
		e.logger.Warn("Dropping order with unknown ledger references",
			logger.Field{Key: "orderID", Value: record.ID},
			logger.Field{Key: "brokerID", Value: record.BrokerID},
			logger.Field{Key: "shareholderID", Value: record.ShareholderID},
		)
		return nil
	}
	return record.ToOrder(broker, shareholder)
}
