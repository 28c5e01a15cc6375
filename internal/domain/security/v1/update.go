package securityv1

import (
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
	requestv1 "github.com/mrmh13801225/matching-engine/internal/domain/request/v1"
	"github.com/mrmh13801225/matching-engine/pkg/errors"
)

// UpdateOrder applies an update request. A request carrying a stop price
// targets a dormant stop-limit order; anything else targets the order book.
func (s *Security) UpdateOrder(req *requestv1.EnterOrderRequest, matcher Matcher) (*matchingv1.MatchResult, error) {
	if req.StopPrice == 0 {
		return s.updateActiveOrder(req, matcher)
	}
	if s.Mode == matchingv1.ModeAuction {
		return matchingv1.AuctionModeConflict(), nil
	}
	return s.updateDormantOrder(req)
}

func (s *Security) validateUpdate(order *orderbookv1.Order, req *requestv1.EnterOrderRequest) (*matchingv1.MatchResult, error) {
	if order == nil {
		return nil, errors.NewErrorDetails(requestv1.ReasonOrderIDNotFound, string(errors.OrderNotFoundError), "orderID")
	}
	if order.Kind == orderbookv1.KindIceberg && req.PeakSize == 0 {
		return nil, errors.NewErrorDetails(requestv1.ReasonInvalidPeakSize, string(errors.InvalidPeakSizeError), "peakSize")
	}
	if order.Kind != orderbookv1.KindIceberg && req.PeakSize != 0 {
		return nil, errors.NewErrorDetails(requestv1.ReasonPeakSizeOnNonIceberg, string(errors.InvalidRequestError), "peakSize")
	}
	if !order.HasSameMinExecQuantity(req.MinimumExecutionQuantity) {
		return matchingv1.DisallowedMinExecOnUpdate(), nil
	}
	if !s.hasEnoughPositions(order, req, order.Shareholder) {
		return matchingv1.NotEnoughPositions(), nil
	}
	return nil, nil
}

// losesPriority reports whether the update forfeits the order's queue
// position: growing the quantity, moving the price, or widening an iceberg
// peak all re-expose the order to the market.
func losesPriority(order *orderbookv1.Order, req *requestv1.EnterOrderRequest) bool {
	return order.IsQuantityIncreased(req.Quantity) ||
		req.Price != order.Price ||
		(order.Kind == orderbookv1.KindIceberg && order.PeakSize < req.PeakSize)
}

func (s *Security) updateActiveOrder(req *requestv1.EnterOrderRequest, matcher Matcher) (*matchingv1.MatchResult, error) {
	order := s.OrderBook.FindByID(req.Side, req.OrderID)
	if result, err := s.validateUpdate(order, req); result != nil || err != nil {
		return result, err
	}

	reexecute := losesPriority(order, req)

	// A buy order's held value changes with the update, so the old value is
	// refunded up front and the new value charged once the outcome is known.
	if order.Side == orderbookv1.SideBuy {
		order.Broker.IncreaseCredit(order.Value())
	}
	original := order.Snapshot()
	order.ApplyUpdate(req.Quantity, req.Price, req.PeakSize, req.StopPrice)

	if !reexecute {
		if order.Side == orderbookv1.SideBuy {
			order.Broker.DecreaseCredit(order.Value())
		}
		if s.Mode == matchingv1.ModeAuction {
			return matchingv1.AuctionBookChanged(s.OrderBook.CalculateOpeningPrice(s.Price), s.OrderBook.TradableQuantity()), nil
		}
		return matchingv1.Executed(nil, nil), nil
	}

	order.MarkAsNew()
	s.OrderBook.RemoveByID(req.Side, req.OrderID)

	if s.Mode == matchingv1.ModeAuction {
		return s.reenterAuctionOrder(order, original), nil
	}

	result := matcher.Execute(s, order)
	if result.Outcome != matchingv1.OutcomeExecuted {
		s.OrderBook.Enqueue(original)
		if original.Side == orderbookv1.SideBuy {
			original.Broker.DecreaseCredit(original.Value())
		}
	}
	return result, nil
}

func (s *Security) reenterAuctionOrder(order, original *orderbookv1.Order) *matchingv1.MatchResult {
	if order.Side == orderbookv1.SideBuy {
		if !order.Broker.HasEnoughCredit(order.Value()) {
			original.Broker.DecreaseCredit(original.Value())
			s.OrderBook.Enqueue(original)
			return matchingv1.NotEnoughCredit()
		}
		order.Broker.DecreaseCredit(order.Value())
	}
	s.OrderBook.Enqueue(order)
	return matchingv1.AuctionBookChanged(s.OrderBook.CalculateOpeningPrice(s.Price), s.OrderBook.TradableQuantity())
}

func (s *Security) updateDormantOrder(req *requestv1.EnterOrderRequest) (*matchingv1.MatchResult, error) {
	order := s.StopOrderBook.FindByID(req.Side, req.OrderID)
	if result, err := s.validateUpdate(order, req); result != nil || err != nil {
		return result, err
	}

	// Swap the credit reservation to the new value before mutating, so a
	// failed swap leaves the dormant order untouched.
	if order.Side == orderbookv1.SideBuy {
		newValue := req.Price * req.Quantity
		order.Broker.ReleaseReservedCredit(order.Value())
		if !order.Broker.ReserveCredit(newValue) {
			order.Broker.ReserveCredit(order.Value())
			return matchingv1.NotEnoughCredit(), nil
		}
	}

	s.StopOrderBook.RemoveByID(req.Side, req.OrderID)
	order.ApplyUpdate(req.Quantity, req.Price, req.PeakSize, req.StopPrice)
	s.StopOrderBook.Enqueue(order)
	return matchingv1.StopOrderUpdated(), nil
}
