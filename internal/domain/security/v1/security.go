package securityv1

import (
	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
	requestv1 "github.com/mrmh13801225/matching-engine/internal/domain/request/v1"
	"github.com/mrmh13801225/matching-engine/pkg/errors"
)

// Security is one tradable instrument. It owns the order book, the stop-order
// book, the current reference price and the activation queue, and it
// orchestrates every order flow, delegating execution to the active matcher.
type Security struct {
	ISIN          string
	TickSize      int64
	LotSize       int64
	Mode          matchingv1.Mode
	Price         int64
	OrderBook     *orderbookv1.OrderBook
	StopOrderBook *orderbookv1.StopOrderBook

	activatedOrders []*orderbookv1.Order
}

// NewSecurity creates a continuous-mode instrument with empty books.
func NewSecurity(isin string, tickSize, lotSize int64) *Security {
	return &Security{
		ISIN:          isin,
		TickSize:      tickSize,
		LotSize:       lotSize,
		Mode:          matchingv1.ModeContinuous,
		OrderBook:     orderbookv1.NewOrderBook(),
		StopOrderBook: orderbookv1.NewStopOrderBook(),
	}
}

// UpdatePrice sets the reference price to the last traded price.
func (s *Security) UpdatePrice(price int64) {
	s.Price = price
}

// NewOrder enters a new order. Sell orders are checked against the
// shareholder's position first; stop-limit orders go dormant into the
// stop-order book; in auction mode orders enqueue without execution.
func (s *Security) NewOrder(req *requestv1.EnterOrderRequest, broker *ledgerv1.Broker, shareholder *ledgerv1.Shareholder, matcher Matcher) *matchingv1.MatchResult {
	if !s.hasEnoughPositions(nil, req, shareholder) {
		return matchingv1.NotEnoughPositions()
	}
	order := s.createOrder(req, broker, shareholder)
	if s.Mode == matchingv1.ModeAuction {
		return s.enterAuctionOrder(order)
	}
	if order.Kind == orderbookv1.KindStopLimit {
		return s.enterStopOrder(order)
	}
	return matcher.Execute(s, order)
}

// DeleteOrder removes an order from whichever book holds it and returns any
// held credit. Stop-order deletion is rejected in auction mode.
func (s *Security) DeleteOrder(req *requestv1.DeleteOrderRequest) (*matchingv1.MatchResult, error) {
	if order := s.OrderBook.FindByID(req.Side, req.OrderID); order != nil {
		if order.Side == orderbookv1.SideBuy {
			order.Broker.IncreaseCredit(order.Value())
		}
		s.OrderBook.RemoveByID(req.Side, req.OrderID)
		if s.Mode == matchingv1.ModeAuction {
			return matchingv1.AuctionBookChanged(s.OrderBook.CalculateOpeningPrice(s.Price), s.OrderBook.TradableQuantity()), nil
		}
		return nil, nil
	}

	if order := s.StopOrderBook.FindByID(req.Side, req.OrderID); order != nil {
		if s.Mode == matchingv1.ModeAuction {
			return nil, errors.NewErrorDetails(requestv1.ReasonStopOrderDeleteInAuction, string(errors.StopOrderInAuctionError), "orderID")
		}
		if order.Side == orderbookv1.SideBuy {
			order.Broker.ReleaseReservedCredit(order.Value())
		}
		s.StopOrderBook.RemoveByID(req.Side, req.OrderID)
		return nil, nil
	}

	return nil, errors.NewErrorDetails(requestv1.ReasonOrderIDNotFound, string(errors.OrderNotFoundError), "orderID")
}

func (s *Security) enterStopOrder(order *orderbookv1.Order) *matchingv1.MatchResult {
	if order.Side == orderbookv1.SideBuy && !order.Broker.ReserveCredit(order.Value()) {
		return matchingv1.NotEnoughCredit()
	}
	s.StopOrderBook.Enqueue(order)
	return matchingv1.StopOrderQueued()
}

func (s *Security) enterAuctionOrder(order *orderbookv1.Order) *matchingv1.MatchResult {
	if order.Kind == orderbookv1.KindStopLimit {
		return matchingv1.AuctionModeConflict()
	}
	if order.Side == orderbookv1.SideBuy {
		if !order.Broker.HasEnoughCredit(order.Value()) {
			return matchingv1.NotEnoughCredit()
		}
		order.Broker.DecreaseCredit(order.Value())
	}
	s.OrderBook.Enqueue(order)
	return matchingv1.OrderAddedToAuction(s.OrderBook.CalculateOpeningPrice(s.Price), s.OrderBook.TradableQuantity())
}

// hasEnoughPositions verifies that a sell request stays within the
// shareholder's position, counting the exposure already resting in the book.
// For an update only the quantity growth needs extra cover.
func (s *Security) hasEnoughPositions(order *orderbookv1.Order, req *requestv1.EnterOrderRequest, shareholder *ledgerv1.Shareholder) bool {
	if req.Side != orderbookv1.SideSell {
		return true
	}
	extra := req.Quantity
	if order != nil {
		extra = req.Quantity - order.Quantity
	}
	return shareholder.HasEnoughPositionsOn(s.ISIN, s.OrderBook.TotalSellQuantityByShareholder(shareholder)+extra)
}

func (s *Security) createOrder(req *requestv1.EnterOrderRequest, broker *ledgerv1.Broker, shareholder *ledgerv1.Shareholder) *orderbookv1.Order {
	var order *orderbookv1.Order
	switch {
	case req.IsStopLimit():
		order = orderbookv1.NewStopLimitOrder(req.OrderID, s.ISIN, req.Side, req.Quantity, req.Price, broker, shareholder, req.MinimumExecutionQuantity, req.StopPrice, req.RequestID)
	case req.IsIceberg():
		order = orderbookv1.NewIcebergOrder(req.OrderID, s.ISIN, req.Side, req.Quantity, req.Price, broker, shareholder, req.PeakSize, req.MinimumExecutionQuantity)
	default:
		order = orderbookv1.NewOrder(req.OrderID, s.ISIN, req.Side, req.Quantity, req.Price, broker, shareholder, req.MinimumExecutionQuantity)
	}
	if !req.EntryTime.IsZero() {
		order.EntryTime = req.EntryTime
	}
	return order
}
