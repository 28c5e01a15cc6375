package matcher

import (
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
	securityv1 "github.com/mrmh13801225/matching-engine/internal/domain/security/v1"
	"github.com/mrmh13801225/matching-engine/pkg/logger"
)

// Continuous matches incoming orders immediately under price-time priority.
// Trades execute at the resting order's price, so price improvement always
// favors the order that was already queued.
type Continuous struct {
	logger logger.Interface
}

// NewContinuous creates a continuous matcher.
func NewContinuous(log logger.Interface) *Continuous {
	return &Continuous{logger: log}
}

// Match runs the matching loop for the order and returns the trades obtained.
// A credit failure or an unmet minimum execution floor rolls back every trade
// of this invocation before reporting.
func (m *Continuous) Match(security *securityv1.Security, newOrder *orderbookv1.Order) *matchingv1.MatchResult {
	book := security.OrderBook
	var trades []*orderbookv1.Trade

	for book.HasOrders(newOrder.Side.Opposite()) && newOrder.VisibleQuantity() > 0 {
		matching := book.MatchWithFirst(newOrder)
		if matching == nil {
			break
		}

		trade := orderbookv1.NewTrade(security.ISIN, matching.Price,
			min(newOrder.VisibleQuantity(), matching.VisibleQuantity()), newOrder, matching)

		if newOrder.Side == orderbookv1.SideBuy {
			if !trade.BuyerHasEnoughCredit() {
				m.rollbackTrades(security, newOrder, trades)
				return matchingv1.NotEnoughCredit()
			}
			trade.DecreaseBuyersCredit()
		}
		trade.IncreaseSellersCredit()
		trades = append(trades, trade)

		m.settleRemainders(book, newOrder, matching)
	}

	if !newOrder.MinExecConditionMet() {
		m.rollbackTrades(security, newOrder, trades)
		return matchingv1.MinExecQuantityNotMet()
	}
	return matchingv1.Executed(newOrder, trades)
}

// settleRemainders decrements both sides after a trade. A fully consumed
// resting order leaves the book; a consumed iceberg slice replenishes and
// requeues at the back of its price level, forfeiting time priority.
func (m *Continuous) settleRemainders(book *orderbookv1.OrderBook, newOrder, matching *orderbookv1.Order) {
	if newOrder.VisibleQuantity() >= matching.VisibleQuantity() {
		newOrder.DecreaseQuantity(matching.VisibleQuantity())
		book.RemoveFirst(matching.Side)
		if matching.Kind == orderbookv1.KindIceberg {
			matching.DecreaseQuantity(matching.VisibleQuantity())
			matching.Replenish()
			if matching.VisibleQuantity() > 0 {
				book.Enqueue(matching)
			}
		}
		return
	}
	matching.DecreaseQuantity(newOrder.VisibleQuantity())
	newOrder.MakeQuantityZero()
}

// rollbackTrades undoes every trade of the current invocation: credit moves
// are reversed and the touched resting orders regain their original position,
// restored in reverse trade order.
func (m *Continuous) rollbackTrades(security *securityv1.Security, newOrder *orderbookv1.Order, trades []*orderbookv1.Trade) {
	var total int64
	for _, trade := range trades {
		total += trade.Value()
	}

	if newOrder.Side == orderbookv1.SideBuy {
		newOrder.Broker.IncreaseCredit(total)
		for _, trade := range trades {
			trade.Sell.Broker.DecreaseCredit(trade.Value())
		}
		for i := len(trades) - 1; i >= 0; i-- {
			security.OrderBook.RestoreOrder(trades[i].Sell)
		}
		return
	}

	newOrder.Broker.DecreaseCredit(total)
	for i := len(trades) - 1; i >= 0; i-- {
		security.OrderBook.RestoreOrder(trades[i].Buy)
	}
}

// Execute matches the order and settles the outcome: the residual quantity is
// enqueued (buy residuals must cover their value in credit), position
// transfers are applied and the reference price moves to the last trade.
func (m *Continuous) Execute(security *securityv1.Security, order *orderbookv1.Order) *matchingv1.MatchResult {
	result := m.Match(security, order)
	if result.Outcome != matchingv1.OutcomeExecuted {
		return result
	}

	if result.Remainder.Quantity > 0 {
		if order.Side == orderbookv1.SideBuy {
			if !order.Broker.HasEnoughCredit(order.Value()) {
				m.rollbackTrades(security, order, result.Trades)
				return matchingv1.NotEnoughCredit()
			}
			order.Broker.DecreaseCredit(order.Value())
		}
		security.OrderBook.Enqueue(result.Remainder)
	}

	applyPositionTransfers(result.Trades)

	if len(result.Trades) > 0 {
		security.UpdatePrice(result.Trades[len(result.Trades)-1].Price)
	}
	return result
}

func applyPositionTransfers(trades []*orderbookv1.Trade) {
	for _, trade := range trades {
		trade.Buy.Shareholder.IncPosition(trade.ISIN, trade.Quantity)
		trade.Sell.Shareholder.DecPosition(trade.ISIN, trade.Quantity)
	}
}
