package orderbookv1

import (
	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
)

// OrderBook holds the resting orders of one instrument, one queue per side,
// ranked by price-time priority. It also carries the equilibrium found by the
// last auction pricing pass.
type OrderBook struct {
	buyQueue         []*Order
	sellQueue        []*Order
	tradableQuantity int64
	openingPrice     int64
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{}
}

// BuyQueue returns the buy side, best ranked first.
func (b *OrderBook) BuyQueue() []*Order {
	return b.buyQueue
}

// SellQueue returns the sell side, best ranked first.
func (b *OrderBook) SellQueue() []*Order {
	return b.sellQueue
}

// OpeningPrice returns the clearing price found by the last pricing pass.
func (b *OrderBook) OpeningPrice() int64 {
	return b.openingPrice
}

// TradableQuantity returns the volume tradable at the last opening price.
func (b *OrderBook) TradableQuantity() int64 {
	return b.tradableQuantity
}

func (b *OrderBook) queue(side Side) []*Order {
	if side == SideBuy {
		return b.buyQueue
	}
	return b.sellQueue
}

func (b *OrderBook) setQueue(side Side, queue []*Order) {
	if side == SideBuy {
		b.buyQueue = queue
	} else {
		b.sellQueue = queue
	}
}

// Enqueue inserts the order preserving side ranking. Orders at the same price
// queue behind earlier arrivals.
func (b *OrderBook) Enqueue(order *Order) {
	queue := b.queue(order.Side)
	idx := len(queue)
	for i, resting := range queue {
		if order.QueuesBefore(resting) {
			idx = i
			break
		}
	}
	order.Queue()
	queue = append(queue, nil)
	copy(queue[idx+1:], queue[idx:])
	queue[idx] = order
	b.setQueue(order.Side, queue)
}

// FindByID returns the resting order with the given id, or nil.
func (b *OrderBook) FindByID(side Side, orderID int64) *Order {
	for _, order := range b.queue(side) {
		if order.ID == orderID {
			return order
		}
	}
	return nil
}

// RemoveByID removes the resting order with the given id. It reports whether
// an order was removed.
func (b *OrderBook) RemoveByID(side Side, orderID int64) bool {
	queue := b.queue(side)
	for i, order := range queue {
		if order.ID == orderID {
			b.setQueue(side, append(queue[:i], queue[i+1:]...))
			return true
		}
	}
	return false
}

// MatchWithFirst returns the best opposite-side order if it is marketable
// against the incoming order, or nil.
func (b *OrderBook) MatchWithFirst(incoming *Order) *Order {
	queue := b.queue(incoming.Side.Opposite())
	if len(queue) == 0 {
		return nil
	}
	if incoming.Matches(queue[0]) {
		return queue[0]
	}
	return nil
}

// PutBack reinserts the order at the front of its side.
func (b *OrderBook) PutBack(order *Order) {
	order.Queue()
	b.setQueue(order.Side, append([]*Order{order}, b.queue(order.Side)...))
}

// RestoreOrder removes any entry with the order's id and reinserts the order
// at the front of its side, regaining its pre-trade priority.
func (b *OrderBook) RestoreOrder(order *Order) {
	b.RemoveByID(order.Side, order.ID)
	b.PutBack(order)
}

// HasOrders reports whether the given side is non-empty.
func (b *OrderBook) HasOrders(side Side) bool {
	return len(b.queue(side)) > 0
}

// RemoveFirst drops the best-ranked order of the given side.
func (b *OrderBook) RemoveFirst(side Side) {
	queue := b.queue(side)
	if len(queue) > 0 {
		b.setQueue(side, queue[1:])
	}
}

// PopFirstTradableBuy removes and returns the best buy order if it can trade
// at the current opening price, or nil.
func (b *OrderBook) PopFirstTradableBuy() *Order {
	if len(b.buyQueue) == 0 || !b.buyQueue[0].CanTradeAt(b.openingPrice) {
		return nil
	}
	first := b.buyQueue[0]
	b.buyQueue = b.buyQueue[1:]
	return first
}

// TotalSellQuantityByShareholder sums the open sell exposure of the given
// shareholder, hidden iceberg quantity included.
func (b *OrderBook) TotalSellQuantityByShareholder(shareholder *ledgerv1.Shareholder) int64 {
	var total int64
	for _, order := range b.sellQueue {
		if order.Shareholder.ID == shareholder.ID {
			total += order.WholeQuantity()
		}
	}
	return total
}

// oppositeTradableQuantity sums the opposite-side quantity marketable against
// the given order, scanning from the best rank.
func (b *OrderBook) oppositeTradableQuantity(order *Order) int64 {
	var tradable int64
	for _, resting := range b.queue(order.Side.Opposite()) {
		if !order.Matches(resting) {
			break
		}
		tradable += resting.WholeQuantity()
	}
	return tradable
}

// optimalPriceBySide walks one side from the best rank and returns the limit
// price maximizing executable volume against the other side, with that volume.
// The first price level reaching the maximum wins.
func (b *OrderBook) optimalPriceBySide(side Side) (int64, int64) {
	var cumulative, bestQuantity, bestPrice int64
	for _, order := range b.queue(side) {
		cumulative += order.WholeQuantity()
		tradable := min(b.oppositeTradableQuantity(order), cumulative)
		if tradable < bestQuantity {
			break
		}
		if tradable > bestQuantity {
			bestPrice = order.Price
			bestQuantity = tradable
		}
	}
	return bestPrice, bestQuantity
}

func clampOpeningPrice(price, lowerBound, upperBound int64) int64 {
	if price >= upperBound {
		return upperBound
	}
	if price <= lowerBound {
		return lowerBound
	}
	return price
}

// CalculateOpeningPrice finds the auction equilibrium closest to the given
// reference price and records it as the book's opening price and tradable
// quantity. When nothing crosses, the opening price degrades to the best
// standing quote capped by the reference price, or zero on an empty book.
func (b *OrderBook) CalculateOpeningPrice(referencePrice int64) int64 {
	upperBoundPrice, _ := b.optimalPriceBySide(SideBuy)
	lowerBoundPrice, lowerBoundQuantity := b.optimalPriceBySide(SideSell)

	b.tradableQuantity = lowerBoundQuantity
	b.openingPrice = clampOpeningPrice(referencePrice, lowerBoundPrice, upperBoundPrice)

	if b.tradableQuantity == 0 {
		b.openingPrice = b.zeroTradableOpeningPrice(referencePrice)
	}

	return b.openingPrice
}

func (b *OrderBook) zeroTradableOpeningPrice(referencePrice int64) int64 {
	switch {
	case len(b.sellQueue) == 0 && len(b.buyQueue) > 0:
		return min(b.buyQueue[0].Price, referencePrice)
	case len(b.buyQueue) == 0 && len(b.sellQueue) > 0:
		return max(b.sellQueue[0].Price, referencePrice)
	default:
		return 0
	}
}
