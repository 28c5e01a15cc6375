package orderbookv1

// StopOrderBook holds dormant stop-limit orders, one queue per side, ranked by
// stop price so that the order closest to its trigger sits at the front.
// Orders leave only through activation or explicit deletion/update.
type StopOrderBook struct {
	buyQueue  []*Order
	sellQueue []*Order
}

// NewStopOrderBook creates an empty stop-order book.
func NewStopOrderBook() *StopOrderBook {
	return &StopOrderBook{}
}

// BuyQueue returns the dormant buy orders, closest to triggering first.
func (b *StopOrderBook) BuyQueue() []*Order {
	return b.buyQueue
}

// SellQueue returns the dormant sell orders, closest to triggering first.
func (b *StopOrderBook) SellQueue() []*Order {
	return b.sellQueue
}

func (b *StopOrderBook) queue(side Side) []*Order {
	if side == SideBuy {
		return b.buyQueue
	}
	return b.sellQueue
}

func (b *StopOrderBook) setQueue(side Side, queue []*Order) {
	if side == SideBuy {
		b.buyQueue = queue
	} else {
		b.sellQueue = queue
	}
}

// Enqueue inserts the order preserving trigger ranking. Orders at the same
// stop price queue behind earlier arrivals.
func (b *StopOrderBook) Enqueue(order *Order) {
	queue := b.queue(order.Side)
	idx := len(queue)
	for i, resting := range queue {
		if order.TriggersBefore(resting) {
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

// FindByID returns the dormant order with the given id, or nil.
func (b *StopOrderBook) FindByID(side Side, orderID int64) *Order {
	for _, order := range b.queue(side) {
		if order.ID == orderID {
			return order
		}
	}
	return nil
}

// RemoveByID removes the dormant order with the given id. It reports whether
// an order was removed.
func (b *StopOrderBook) RemoveByID(side Side, orderID int64) bool {
	queue := b.queue(side)
	for i, order := range queue {
		if order.ID == orderID {
			b.setQueue(side, append(queue[:i], queue[i+1:]...))
			return true
		}
	}
	return false
}

// PopActivatedOrders removes and returns every order triggering at the given
// price. The ranking keeps activatable orders contiguous at the front of each
// side, so the scan stops at the first order that does not trigger.
func (b *StopOrderBook) PopActivatedOrders(price int64) []*Order {
	var activated []*Order
	for _, side := range []Side{SideBuy, SideSell} {
		queue := b.queue(side)
		i := 0
		for i < len(queue) && queue[i].IsActivated(price) {
			activated = append(activated, queue[i])
			i++
		}
		b.setQueue(side, queue[i:])
	}
	return activated
}
