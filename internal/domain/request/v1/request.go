package requestv1

import (
	"time"

	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
)

// Kind represents the type of an incoming request.
type Kind string

const (
	// KindEnterOrder represents a new-order or update-order request.
	KindEnterOrder Kind = "ENTER_ORDER"
	// KindDeleteOrder represents a cancellation request.
	KindDeleteOrder Kind = "DELETE_ORDER"
	// KindChangeState represents a matching-state change request.
	KindChangeState Kind = "CHANGE_STATE"
)

// EntryType distinguishes new orders from updates inside an enter-order
// request.
type EntryType string

const (
	// EntryTypeNew represents a new order.
	EntryTypeNew EntryType = "NEW_ORDER"
	// EntryTypeUpdate represents an update to an existing order.
	EntryTypeUpdate EntryType = "UPDATE_ORDER"
)

// Request is the envelope decoded from the request stream. Exactly one of the
// payload fields is set, selected by Kind.
type Request struct {
	Kind        Kind                `json:"kind"`
	EnterOrder  *EnterOrderRequest  `json:"enterOrder,omitempty"`
	DeleteOrder *DeleteOrderRequest `json:"deleteOrder,omitempty"`
	ChangeState *ChangeStateRequest `json:"changeState,omitempty"`
	Offset      int64               `json:"-"` // stream offset, set by the reader
}

// EnterOrderRequest carries a new-order or update-order request.
type EnterOrderRequest struct {
	RequestID                int64            `json:"requestID"`
	EntryType                EntryType        `json:"entryType"`
	OrderID                  int64            `json:"orderID"`
	ISIN                     string           `json:"isin"`
	BrokerID                 int64            `json:"brokerID"`
	ShareholderID            int64            `json:"shareholderID"`
	Side                     orderbookv1.Side `json:"side"`
	Quantity                 int64            `json:"quantity"`
	Price                    int64            `json:"price"`
	PeakSize                 int64            `json:"peakSize"`
	MinimumExecutionQuantity int64            `json:"minimumExecutionQuantity"`
	StopPrice                int64            `json:"stopPrice"`
	EntryTime                time.Time        `json:"entryTime"`
}

// IsStopLimit reports whether the request describes a stop-limit order.
func (r *EnterOrderRequest) IsStopLimit() bool {
	return r.PeakSize == 0 && r.StopPrice > 0
}

// IsIceberg reports whether the request describes an iceberg order.
func (r *EnterOrderRequest) IsIceberg() bool {
	return r.PeakSize != 0
}

// DeleteOrderRequest carries a cancellation request.
type DeleteOrderRequest struct {
	RequestID int64            `json:"requestID"`
	ISIN      string           `json:"isin"`
	Side      orderbookv1.Side `json:"side"`
	OrderID   int64            `json:"orderID"`
}

// ChangeStateRequest carries a matching-state change request.
type ChangeStateRequest struct {
	RequestID   int64           `json:"requestID"`
	ISIN        string          `json:"isin"`
	TargetState matchingv1.Mode `json:"targetState"`
}
