package matchingv1

import (
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
)

// MatchResult carries the outcome of one matching pass: the trades generated,
// the post-state remainder of the subject order and, for auction-affecting
// operations, the refreshed equilibrium.
type MatchResult struct {
	Outcome          Outcome              `json:"outcome"`
	Remainder        *orderbookv1.Order   `json:"remainder,omitempty"`
	Trades           []*orderbookv1.Trade `json:"trades,omitempty"`
	OpeningPrice     int64                `json:"openingPrice,omitempty"`
	TradableQuantity int64                `json:"tradableQuantity,omitempty"`
}

// Executed creates a successful continuous match result.
func Executed(remainder *orderbookv1.Order, trades []*orderbookv1.Trade) *MatchResult {
	return &MatchResult{Outcome: OutcomeExecuted, Remainder: remainder, Trades: trades}
}

// NotEnoughCredit creates a credit-failure result.
func NotEnoughCredit() *MatchResult {
	return &MatchResult{Outcome: OutcomeNotEnoughCredit}
}

// NotEnoughPositions creates a position-failure result.
func NotEnoughPositions() *MatchResult {
	return &MatchResult{Outcome: OutcomeNotEnoughPositions}
}

// MinExecQuantityNotMet creates a minimum-execution-failure result.
func MinExecQuantityNotMet() *MatchResult {
	return &MatchResult{Outcome: OutcomeMinExecQuantityNotMet}
}

// DisallowedMinExecOnUpdate creates a result for an update that tried to
// change the minimum execution floor.
func DisallowedMinExecOnUpdate() *MatchResult {
	return &MatchResult{Outcome: OutcomeDisallowedMinExecOnUpdate}
}

// AuctionModeConflict creates a result for a stop-order operation attempted
// in auction mode.
func AuctionModeConflict() *MatchResult {
	return &MatchResult{Outcome: OutcomeAuctionModeConflict}
}

// StopOrderQueued creates a result for a stop-limit order accepted into the
// stop-order book.
func StopOrderQueued() *MatchResult {
	return &MatchResult{Outcome: OutcomeStopOrderQueued}
}

// StopOrderUpdated creates a result for a dormant stop-limit order updated in
// place.
func StopOrderUpdated() *MatchResult {
	return &MatchResult{Outcome: OutcomeStopOrderUpdated}
}

// StopOrderActivated creates a result announcing the activation of the given
// order.
func StopOrderActivated(order *orderbookv1.Order) *MatchResult {
	return &MatchResult{Outcome: OutcomeStopOrderActivated, Remainder: order}
}

// OrderAddedToAuction creates a result for an order enqueued in auction mode.
func OrderAddedToAuction(openingPrice, tradableQuantity int64) *MatchResult {
	return &MatchResult{
		Outcome:          OutcomeOrderAddedToAuction,
		OpeningPrice:     openingPrice,
		TradableQuantity: tradableQuantity,
	}
}

// AuctionBookChanged creates a result for an auction-mode book mutation.
func AuctionBookChanged(openingPrice, tradableQuantity int64) *MatchResult {
	return &MatchResult{
		Outcome:          OutcomeAuctionBookChanged,
		OpeningPrice:     openingPrice,
		TradableQuantity: tradableQuantity,
	}
}
