package orderbookv1

// Trade represents a single execution. Both sides are snapshots taken at
// execution time so that later mutation of the live orders cannot change the
// trade record.
type Trade struct {
	ISIN     string `json:"isin"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Buy      *Order `json:"buy"`
	Sell     *Order `json:"sell"`
}

// NewTrade creates a trade between the two orders at the given price and
// quantity, snapshotting both sides.
func NewTrade(isin string, price, quantity int64, first, second *Order) *Trade {
	trade := &Trade{
		ISIN:     isin,
		Price:    price,
		Quantity: quantity,
	}
	if first.Side == SideBuy {
		trade.Buy = first.Snapshot()
		trade.Sell = second.Snapshot()
	} else {
		trade.Buy = second.Snapshot()
		trade.Sell = first.Snapshot()
	}
	return trade
}

// Value returns the traded value.
func (t *Trade) Value() int64 {
	return t.Price * t.Quantity
}

// IncreaseSellersCredit credits the seller with the traded value.
func (t *Trade) IncreaseSellersCredit() {
	t.Sell.Broker.IncreaseCredit(t.Value())
}

// DecreaseBuyersCredit debits the buyer with the traded value.
func (t *Trade) DecreaseBuyersCredit() {
	t.Buy.Broker.DecreaseCredit(t.Value())
}

// BuyerHasEnoughCredit reports whether the buyer can pay for the trade.
func (t *Trade) BuyerHasEnoughCredit() bool {
	return t.Buy.Broker.HasEnoughCredit(t.Value())
}
