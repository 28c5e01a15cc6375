package securityv1

import (
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
)

// ChangeState switches the matching mode in place. A transition out of
// continuous mode takes effect directly; a transition out of auction mode is
// virtual, meaning the caller runs an uncrossing pass before the new mode is
// effective.
func (s *Security) ChangeState(target matchingv1.Mode) *matchingv1.StateChangeResult {
	previous := s.Mode
	s.Mode = target
	if previous == matchingv1.ModeAuction {
		return matchingv1.VirtualStateChange()
	}
	return matchingv1.RealStateChange()
}

// Open uncrosses the book at the auction equilibrium: the clearing price is
// refreshed from the current book, then every buy order still crossable at
// that price is popped and executed through the auction matcher. A pop that
// produces no trade means the sell side is exhausted, so its remainder stays
// at the front and the pass ends. When the uncrossing trades, the clearing
// price becomes the new reference price, so a following activation pass
// sees it.
func (s *Security) Open(matcher AuctionMatcher) []*matchingv1.MatchResult {
	s.OrderBook.CalculateOpeningPrice(s.Price)
	var results []*matchingv1.MatchResult
	for buy := s.OrderBook.PopFirstTradableBuy(); buy != nil; buy = s.OrderBook.PopFirstTradableBuy() {
		result := matcher.Execute(s, buy, s.OrderBook.OpeningPrice())
		if len(result.Trades) == 0 {
			break
		}
		results = append(results, result)
	}
	if len(results) > 0 {
		s.UpdatePrice(s.OrderBook.OpeningPrice())
	}
	return results
}
