package orderbookv1

import (
	"time"

	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
)

// Status represents the lifecycle status of an order.
type Status string

const (
	// StatusNew marks an order that has not been queued into a book yet.
	StatusNew Status = "NEW"
	// StatusQueued marks an order resting in a book.
	StatusQueued Status = "QUEUED"
	// StatusSnapshot marks an immutable copy taken for a trade or rollback.
	StatusSnapshot Status = "SNAPSHOT"
)

// Kind represents the order variant.
type Kind string

const (
	// KindLimit represents a plain limit order.
	KindLimit Kind = "LIMIT"
	// KindIceberg represents an iceberg order with a displayed slice.
	KindIceberg Kind = "ICEBERG"
	// KindStopLimit represents a dormant stop-limit order.
	KindStopLimit Kind = "STOP_LIMIT"
)

// Order represents a single order. The Kind tag selects the variant; the
// variant payload fields are meaningful only for their kind.
type Order struct {
	ID                       int64                 `json:"id"`
	ISIN                     string                `json:"isin"`
	Side                     Side                  `json:"side"`
	InitialQuantity          int64                 `json:"initialQuantity"`
	Quantity                 int64                 `json:"quantity"`
	Price                    int64                 `json:"price"`
	Broker                   *ledgerv1.Broker      `json:"-"`
	Shareholder              *ledgerv1.Shareholder `json:"-"`
	EntryTime                time.Time             `json:"entryTime"`
	Status                   Status                `json:"status"`
	MinimumExecutionQuantity int64                 `json:"minimumExecutionQuantity"`
	Updated                  bool                  `json:"updated"`
	Kind                     Kind                  `json:"kind"`

	// Iceberg payload.
	PeakSize          int64 `json:"peakSize,omitempty"`
	DisplayedQuantity int64 `json:"displayedQuantity,omitempty"`

	// Stop-limit payload. RequestID identifies the entry request so that the
	// activation event can reference it.
	StopPrice int64 `json:"stopPrice,omitempty"`
	RequestID int64 `json:"requestID,omitempty"`
}

// NewOrder creates a plain limit order.
func NewOrder(id int64, isin string, side Side, quantity, price int64, broker *ledgerv1.Broker, shareholder *ledgerv1.Shareholder, minExecQuantity int64) *Order {
	return &Order{
		ID:                       id,
		ISIN:                     isin,
		Side:                     side,
		InitialQuantity:          quantity,
		Quantity:                 quantity,
		Price:                    price,
		Broker:                   broker,
		Shareholder:              shareholder,
		EntryTime:                time.Now(),
		Status:                   StatusNew,
		MinimumExecutionQuantity: minExecQuantity,
		Kind:                     KindLimit,
	}
}

// NewIcebergOrder creates an iceberg order. The displayed slice starts at
// min(peakSize, quantity).
func NewIcebergOrder(id int64, isin string, side Side, quantity, price int64, broker *ledgerv1.Broker, shareholder *ledgerv1.Shareholder, peakSize, minExecQuantity int64) *Order {
	order := NewOrder(id, isin, side, quantity, price, broker, shareholder, minExecQuantity)
	order.Kind = KindIceberg
	order.PeakSize = peakSize
	order.DisplayedQuantity = min(peakSize, quantity)
	return order
}

// NewStopLimitOrder creates a dormant stop-limit order.
func NewStopLimitOrder(id int64, isin string, side Side, quantity, price int64, broker *ledgerv1.Broker, shareholder *ledgerv1.Shareholder, minExecQuantity, stopPrice, requestID int64) *Order {
	order := NewOrder(id, isin, side, quantity, price, broker, shareholder, minExecQuantity)
	order.Kind = KindStopLimit
	order.StopPrice = stopPrice
	order.RequestID = requestID
	return order
}

// Snapshot returns an immutable copy of the order. The broker and shareholder
// references are shared with the original.
func (o *Order) Snapshot() *Order {
	copied := *o
	copied.Status = StatusSnapshot
	return &copied
}

// SnapshotWithQuantity returns a snapshot holding the given quantity.
func (o *Order) SnapshotWithQuantity(quantity int64) *Order {
	copied := o.Snapshot()
	copied.Quantity = quantity
	return copied
}

// Matches reports whether the order is marketable against other.
func (o *Order) Matches(other *Order) bool {
	if o.Side == SideBuy {
		return o.Price >= other.Price
	}
	return o.Price <= other.Price
}

// CanTradeAt reports whether the order's limit price allows execution at the
// given price.
func (o *Order) CanTradeAt(price int64) bool {
	if o.Side == SideBuy {
		return o.Price >= price
	}
	return o.Price <= price
}

// VisibleQuantity returns the quantity the matcher may consume in one pass.
// For a queued iceberg order this is the displayed slice; otherwise the full
// remaining quantity.
func (o *Order) VisibleQuantity() int64 {
	if o.Kind == KindIceberg && o.Status != StatusNew {
		return o.DisplayedQuantity
	}
	return o.Quantity
}

// WholeQuantity returns the full remaining quantity including any hidden part.
func (o *Order) WholeQuantity() int64 {
	return o.Quantity
}

// DecreaseQuantity removes amount from the order. A queued iceberg order
// consumes its displayed slice alongside the total. Decreasing beyond the
// consumable quantity violates a book invariant and panics.
func (o *Order) DecreaseQuantity(amount int64) {
	if o.Kind == KindIceberg && o.Status != StatusNew {
		if amount > o.DisplayedQuantity {
			panic("orderbook: decrease beyond displayed quantity")
		}
		o.Quantity -= amount
		o.DisplayedQuantity -= amount
		return
	}
	if amount > o.Quantity {
		panic("orderbook: decrease beyond remaining quantity")
	}
	o.Quantity -= amount
}

// MakeQuantityZero marks the order fully consumed.
func (o *Order) MakeQuantityZero() {
	o.Quantity = 0
}

// Replenish refreshes an iceberg order's displayed slice from the hidden part.
func (o *Order) Replenish() {
	o.DisplayedQuantity = min(o.Quantity, o.PeakSize)
}

// QueuesBefore reports whether the order outranks other in the book.
// Time priority is handled by insertion position, so equality never outranks.
func (o *Order) QueuesBefore(other *Order) bool {
	if other.Side == SideBuy {
		return o.Price > other.Price
	}
	return o.Price < other.Price
}

// TriggersBefore reports whether the order activates before other in the
// stop-order book. The order closest to its trigger ranks first.
func (o *Order) TriggersBefore(other *Order) bool {
	if other.Side == SideBuy {
		return o.StopPrice < other.StopPrice
	}
	return o.StopPrice > other.StopPrice
}

// IsActivated reports whether a stop-limit order triggers at the given price.
func (o *Order) IsActivated(price int64) bool {
	if o.Side == SideBuy {
		return price >= o.StopPrice
	}
	return price <= o.StopPrice
}

// Activate converts a dormant stop-limit order into a plain limit order. The
// stop payload is kept for reporting.
func (o *Order) Activate() {
	o.Kind = KindLimit
}

// Queue marks the order as resting. An iceberg order refreshes its displayed
// slice on entry.
func (o *Order) Queue() {
	if o.Kind == KindIceberg {
		o.DisplayedQuantity = min(o.Quantity, o.PeakSize)
	}
	o.Status = StatusQueued
}

// MarkAsNew returns the order to the NEW status for re-execution after an
// update. Updated orders are exempt from the minimum execution floor.
func (o *Order) MarkAsNew() {
	o.Status = StatusNew
	o.Updated = true
}

// IsQuantityIncreased reports whether newQuantity grows the order.
func (o *Order) IsQuantityIncreased(newQuantity int64) bool {
	return newQuantity > o.Quantity
}

// ApplyUpdate rewrites the mutable fields from an update request. An iceberg
// order growing its peak refreshes the displayed slice from the hidden part,
// while a shrinking peak only caps the current slice.
func (o *Order) ApplyUpdate(quantity, price, peakSize, stopPrice int64) {
	o.Quantity = quantity
	o.Price = price
	switch o.Kind {
	case KindIceberg:
		if o.PeakSize < peakSize {
			o.DisplayedQuantity = min(o.Quantity, peakSize)
		} else if o.PeakSize > peakSize {
			o.DisplayedQuantity = min(o.DisplayedQuantity, peakSize)
		}
		o.PeakSize = peakSize
	case KindStopLimit:
		o.StopPrice = stopPrice
	}
}

// Value returns the notional value of the remaining quantity.
func (o *Order) Value() int64 {
	return o.Price * o.Quantity
}

// MinExecConditionMet reports whether the minimum execution floor is
// satisfied. Updated orders are exempt.
func (o *Order) MinExecConditionMet() bool {
	return o.Updated || o.InitialQuantity-o.Quantity >= o.MinimumExecutionQuantity
}

// HasSameMinExecQuantity reports whether the given floor matches the order's.
func (o *Order) HasSameMinExecQuantity(minExecQuantity int64) bool {
	return o.MinimumExecutionQuantity == minExecQuantity
}
