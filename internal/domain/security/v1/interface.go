package securityv1

import (
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
)

// Matcher executes an order against the book in continuous mode, rolling back
// every partial effect when the order cannot complete.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=securityv1_mock
type Matcher interface {
	Execute(security *Security, order *orderbookv1.Order) *matchingv1.MatchResult
}

// AuctionMatcher executes an order against the book at a fixed clearing
// price during an auction uncrossing.
type AuctionMatcher interface {
	Execute(security *Security, order *orderbookv1.Order, clearingPrice int64) *matchingv1.MatchResult
}
