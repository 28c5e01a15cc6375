package eventv1

import (
	"time"

	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
)

// Type represents the type of an outgoing event.
type Type string

const (
	// TypeOrderAccepted announces a new order accepted by the engine.
	TypeOrderAccepted Type = "ORDER_ACCEPTED"
	// TypeOrderUpdated announces an order update applied by the engine.
	TypeOrderUpdated Type = "ORDER_UPDATED"
	// TypeOrderDeleted announces an order removed from the books.
	TypeOrderDeleted Type = "ORDER_DELETED"
	// TypeOrderRejected announces a rejected request with its reasons.
	TypeOrderRejected Type = "ORDER_REJECTED"
	// TypeOrderExecuted announces the trades generated for an order.
	TypeOrderExecuted Type = "ORDER_EXECUTED"
	// TypeOrderActivated announces a stop-limit order leaving dormancy.
	TypeOrderActivated Type = "ORDER_ACTIVATED"
	// TypeTradeExecuted announces a single trade of an auction uncrossing.
	TypeTradeExecuted Type = "TRADE_EXECUTED"
	// TypeOpeningPrice announces a refreshed auction equilibrium.
	TypeOpeningPrice Type = "OPENING_PRICE"
	// TypeStateChanged announces a matching-state transition.
	TypeStateChanged Type = "STATE_CHANGED"
)

// Event is the envelope written to the event stream. Exactly one of the
// payload fields is set, selected by Type.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`

	OrderAccepted  *OrderAcceptedPayload  `json:"orderAccepted,omitempty"`
	OrderUpdated   *OrderUpdatedPayload   `json:"orderUpdated,omitempty"`
	OrderDeleted   *OrderDeletedPayload   `json:"orderDeleted,omitempty"`
	OrderRejected  *OrderRejectedPayload  `json:"orderRejected,omitempty"`
	OrderExecuted  *OrderExecutedPayload  `json:"orderExecuted,omitempty"`
	OrderActivated *OrderActivatedPayload `json:"orderActivated,omitempty"`
	TradeExecuted  *TradeExecutedPayload  `json:"tradeExecuted,omitempty"`
	OpeningPrice   *OpeningPricePayload   `json:"openingPrice,omitempty"`
	StateChanged   *StateChangedPayload   `json:"stateChanged,omitempty"`
}

// OrderAcceptedPayload references the accepted request and order.
type OrderAcceptedPayload struct {
	RequestID int64 `json:"requestID"`
	OrderID   int64 `json:"orderID"`
}

// OrderUpdatedPayload references the applied update request and order.
type OrderUpdatedPayload struct {
	RequestID int64 `json:"requestID"`
	OrderID   int64 `json:"orderID"`
}

// OrderDeletedPayload references the applied delete request and order.
type OrderDeletedPayload struct {
	RequestID int64 `json:"requestID"`
	OrderID   int64 `json:"orderID"`
}

// OrderRejectedPayload carries every reason the request was rejected for.
type OrderRejectedPayload struct {
	RequestID int64    `json:"requestID"`
	OrderID   int64    `json:"orderID"`
	Reasons   []string `json:"reasons"`
}

// TradeInfo is the per-trade record attached to execution events.
type TradeInfo struct {
	ISIN        string `json:"isin"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	BuyOrderID  int64  `json:"buyOrderID"`
	SellOrderID int64  `json:"sellOrderID"`
}

// NewTradeInfo builds a TradeInfo from a trade record.
func NewTradeInfo(trade *orderbookv1.Trade) TradeInfo {
	return TradeInfo{
		ISIN:        trade.ISIN,
		Price:       trade.Price,
		Quantity:    trade.Quantity,
		BuyOrderID:  trade.Buy.ID,
		SellOrderID: trade.Sell.ID,
	}
}

// OrderExecutedPayload carries the trades generated for one order.
type OrderExecutedPayload struct {
	RequestID int64       `json:"requestID"`
	OrderID   int64       `json:"orderID"`
	Trades    []TradeInfo `json:"trades"`
}

// OrderActivatedPayload references the entry request of the activated
// stop-limit order.
type OrderActivatedPayload struct {
	RequestID int64 `json:"requestID"`
	OrderID   int64 `json:"orderID"`
}

// TradeExecutedPayload carries one trade of an auction uncrossing.
type TradeExecutedPayload struct {
	TradeInfo
}

// OpeningPricePayload carries a refreshed auction equilibrium.
type OpeningPricePayload struct {
	ISIN             string `json:"isin"`
	OpeningPrice     int64  `json:"openingPrice"`
	TradableQuantity int64  `json:"tradableQuantity"`
}

// StateChangedPayload announces the new matching state of an instrument.
type StateChangedPayload struct {
	ISIN  string          `json:"isin"`
	State matchingv1.Mode `json:"state"`
}
