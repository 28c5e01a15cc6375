package matcher

import (
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
	securityv1 "github.com/mrmh13801225/matching-engine/internal/domain/security/v1"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
)

// Auction executes orders at a fixed clearing price during an uncrossing.
// Buyers prepaid their limit value on entry, so the difference between the
// limit price and the lower clearing price is refunded per matched quantity.
type Auction struct {
	logger logger.Interface
}

// NewAuction creates an auction matcher.
func NewAuction(log logger.Interface) *Auction {
	return &Auction{logger: log}
}

func (m *Auction) match(security *securityv1.Security, newOrder *orderbookv1.Order, clearingPrice int64) *matchingv1.MatchResult {
	book := security.OrderBook
	var trades []*orderbookv1.Trade
	continuous := Continuous{logger: m.logger}

	for book.HasOrders(newOrder.Side.Opposite()) && newOrder.VisibleQuantity() > 0 {
		matching := book.MatchWithFirst(newOrder)
		if matching == nil {
			break
		}

		trade := orderbookv1.NewTrade(security.ISIN, clearingPrice,
			min(newOrder.VisibleQuantity(), matching.VisibleQuantity()), newOrder, matching)

		if newOrder.Side == orderbookv1.SideBuy {
			refund := (newOrder.Price - clearingPrice) * trade.Quantity
			newOrder.Broker.IncreaseCredit(refund)
		}
		trade.IncreaseSellersCredit()
		trades = append(trades, trade)

		continuous.settleRemainders(book, newOrder, matching)
	}

	return matchingv1.Executed(newOrder, trades)
}

// Execute uncrosses the order at the clearing price. Leftover quantity is
// requeued at the front so that the next pricing pass still sees it.
func (m *Auction) Execute(security *securityv1.Security, order *orderbookv1.Order, clearingPrice int64) *matchingv1.MatchResult {
	result := m.match(security, order, clearingPrice)
	if result.Remainder.Quantity > 0 {
		security.OrderBook.PutBack(result.Remainder)
	}
	applyPositionTransfers(result.Trades)
	return result
}
