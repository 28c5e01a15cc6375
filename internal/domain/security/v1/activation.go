package securityv1

import (
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
)

// HandleActivation moves every stop order triggering at the current reference
// price into the activation queue, converting each to a plain limit order.
// Auction mode keeps stop orders dormant.
func (s *Security) HandleActivation() []*matchingv1.MatchResult {
	if s.Mode == matchingv1.ModeAuction {
		return nil
	}
	activated := s.StopOrderBook.PopActivatedOrders(s.Price)
	results := make([]*matchingv1.MatchResult, 0, len(activated))
	for _, order := range activated {
		order.Activate()
		s.activatedOrders = append(s.activatedOrders, order)
		results = append(results, matchingv1.StopOrderActivated(order))
	}
	return results
}

func (s *Security) executeFirstActivatedOrder(matcher Matcher) *matchingv1.MatchResult {
	if len(s.activatedOrders) == 0 {
		return nil
	}
	order := s.activatedOrders[0]
	s.activatedOrders = s.activatedOrders[1:]
	if order.Side == orderbookv1.SideBuy {
		order.Broker.ReleaseReservedCredit(order.Value())
	}
	return matcher.Execute(s, order)
}

// ExecuteActivatedStopOrders drains the activation queue: execute the oldest
// activated order, re-scan for orders triggered by the resulting price move,
// and repeat until the queue is empty. One trade can cascade into a chain of
// further trades this way.
func (s *Security) ExecuteActivatedStopOrders(matcher Matcher) []*matchingv1.MatchResult {
	if s.Mode == matchingv1.ModeAuction {
		return nil
	}
	var results []*matchingv1.MatchResult
	for result := s.executeFirstActivatedOrder(matcher); result != nil; result = s.executeFirstActivatedOrder(matcher) {
		results = append(results, result)
		results = append(results, s.HandleActivation()...)
	}
	return results
}
