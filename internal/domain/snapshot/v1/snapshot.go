package snapshotv1

import (
	"time"

	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
)

// OrderRecord is the serializable form of a resting order. Broker and
// shareholder are stored by id and resolved from the ledger on restore.
type OrderRecord struct {
	ID                       int64              `json:"id"`
	ISIN                     string             `json:"isin"`
	Side                     orderbookv1.Side   `json:"side"`
	InitialQuantity          int64              `json:"initialQuantity"`
	Quantity                 int64              `json:"quantity"`
	Price                    int64              `json:"price"`
	BrokerID                 int64              `json:"brokerID"`
	ShareholderID            int64              `json:"shareholderID"`
	EntryTime                time.Time          `json:"entryTime"`
	Status                   orderbookv1.Status `json:"status"`
	MinimumExecutionQuantity int64              `json:"minimumExecutionQuantity"`
	Updated                  bool               `json:"updated"`
	Kind                     orderbookv1.Kind   `json:"kind"`
	PeakSize                 int64              `json:"peakSize,omitempty"`
	DisplayedQuantity        int64              `json:"displayedQuantity,omitempty"`
	StopPrice                int64              `json:"stopPrice,omitempty"`
	RequestID                int64              `json:"requestID,omitempty"`
}

// NewOrderRecord builds a record from a resting order.
func NewOrderRecord(order *orderbookv1.Order) *OrderRecord {
	record := &OrderRecord{
		ID:                       order.ID,
		ISIN:                     order.ISIN,
		Side:                     order.Side,
		InitialQuantity:          order.InitialQuantity,
		Quantity:                 order.Quantity,
		Price:                    order.Price,
		EntryTime:                order.EntryTime,
		Status:                   order.Status,
		MinimumExecutionQuantity: order.MinimumExecutionQuantity,
		Updated:                  order.Updated,
		Kind:                     order.Kind,
		PeakSize:                 order.PeakSize,
		DisplayedQuantity:        order.DisplayedQuantity,
		StopPrice:                order.StopPrice,
		RequestID:                order.RequestID,
	}
	if order.Broker != nil {
		record.BrokerID = order.Broker.ID
	}
	if order.Shareholder != nil {
		record.ShareholderID = order.Shareholder.ID
	}
	return record
}

// ToOrder rebuilds the resting order with its ledger references resolved.
func (r *OrderRecord) ToOrder(broker *ledgerv1.Broker, shareholder *ledgerv1.Shareholder) *orderbookv1.Order {
	return &orderbookv1.Order{
		ID:                       r.ID,
		ISIN:                     r.ISIN,
		Side:                     r.Side,
		InitialQuantity:          r.InitialQuantity,
		Quantity:                 r.Quantity,
		Price:                    r.Price,
		Broker:                   broker,
		Shareholder:              shareholder,
		EntryTime:                r.EntryTime,
		Status:                   r.Status,
		MinimumExecutionQuantity: r.MinimumExecutionQuantity,
		Updated:                  r.Updated,
		Kind:                     r.Kind,
		PeakSize:                 r.PeakSize,
		DisplayedQuantity:        r.DisplayedQuantity,
		StopPrice:                r.StopPrice,
		RequestID:                r.RequestID,
	}
}

// Snapshot captures the engine state at a stream offset so that a restart can
// resume from the offset instead of replaying the whole request stream.
type Snapshot struct {
	ISIN       string          `json:"isin"`
	Offset     int64           `json:"offset"`
	TakenAt    time.Time       `json:"takenAt"`
	Mode       matchingv1.Mode `json:"mode"`
	Price      int64           `json:"price"`
	BuyOrders  []*OrderRecord  `json:"buyOrders"`
	SellOrders []*OrderRecord  `json:"sellOrders"`
	BuyStops   []*OrderRecord  `json:"buyStops"`
	SellStops  []*OrderRecord  `json:"sellStops"`

	Brokers      []*ledgerv1.Broker      `json:"brokers"`
	Shareholders []*ledgerv1.Shareholder `json:"shareholders"`
}
