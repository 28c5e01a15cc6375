package engine

import (
	eventv1 "github.com/mrmh13801225/matching-engine/internal/domain/event/v1"
	matchingv1 "github.com/mrmh13801225/matching-engine/internal/domain/matching/v1"
	requestv1 "github.com/mrmh13801225/matching-engine/internal/domain/request/v1"
	"github.com/mrmh13801225/matching-engine/pkg/errors"
)

// processRequest runs one request through the matching core and publishes the
// resulting events in a single batch.
func (e *Engine) processRequest(request *requestv1.Request) error {
	var events []*eventv1.Event

	e.mu.Lock()
	switch request.Kind {
	case requestv1.KindEnterOrder:
		events = e.handleEnterOrder(request.EnterOrder)
	case requestv1.KindDeleteOrder:
		events = e.handleDeleteOrder(request.DeleteOrder)
	case requestv1.KindChangeState:
		events = e.handleChangeState(request.ChangeState)
	default:
		e.mu.Unlock()
		return errors.NewErrorDetails("Unknown request kind", string(errors.InvalidRequestError), "kind")
	}
	e.metrics.LastTradePrice.Set(float64(e.security.Price))
	e.mu.Unlock()

	e.metrics.RequestsTotal.WithLabelValues(string(request.Kind)).Inc()
	e.metrics.EventsPublished.Add(float64(len(events)))
	return e.publisher.Publish(e.ctx, events...)
}

func (e *Engine) handleEnterOrder(req *requestv1.EnterOrderRequest) []*eventv1.Event {
	reasons := req.Validate(e.security.LotSize, e.security.TickSize)
	if req.ISIN != e.security.ISIN {
		reasons = append(reasons, requestv1.ReasonUnknownISIN)
	}
	broker := e.ledger.FindBrokerByID(req.BrokerID)
	if broker == nil {
		reasons = append(reasons, requestv1.ReasonUnknownBrokerID)
	}
	shareholder := e.ledger.FindShareholderByID(req.ShareholderID)
	if shareholder == nil {
		reasons = append(reasons, requestv1.ReasonUnknownShareholderID)
	}
	if len(reasons) > 0 {
		return []*eventv1.Event{e.rejectedEvent(req.RequestID, req.OrderID, reasons)}
	}

	var result *matchingv1.MatchResult
	if req.EntryType == requestv1.EntryTypeNew {
		result = e.security.NewOrder(req, broker, shareholder, e.matcher)
	} else {
		var err error
		result, err = e.security.UpdateOrder(req, e.matcher)
		if err != nil {
			return []*eventv1.Event{e.rejectedEvent(req.RequestID, req.OrderID, []string{err.Error()})}
		}
	}

	activations := e.security.HandleActivation()
	executions := e.security.ExecuteActivatedStopOrders(e.matcher)

	return e.enterOrderEvents(req, result, activations, executions)
}

func (e *Engine) enterOrderEvents(req *requestv1.EnterOrderRequest, result *matchingv1.MatchResult, activations, executions []*matchingv1.MatchResult) []*eventv1.Event {
	if reason, rejected := rejectionReason(req, result.Outcome); rejected {
		e.metrics.RejectionsTotal.WithLabelValues(string(result.Outcome)).Inc()
		return []*eventv1.Event{e.rejectedEvent(req.RequestID, req.OrderID, []string{reason})}
	}

	var events []*eventv1.Event
	if result.Outcome == matchingv1.OutcomeOrderAddedToAuction || result.Outcome == matchingv1.OutcomeAuctionBookChanged {
		events = append(events, e.openingPriceEvent(result))
	}
	if req.EntryType == requestv1.EntryTypeNew {
		events = append(events, &eventv1.Event{
			Type:          eventv1.TypeOrderAccepted,
			OrderAccepted: &eventv1.OrderAcceptedPayload{RequestID: req.RequestID, OrderID: req.OrderID},
		})
	} else {
		events = append(events, &eventv1.Event{
			Type:         eventv1.TypeOrderUpdated,
			OrderUpdated: &eventv1.OrderUpdatedPayload{RequestID: req.RequestID, OrderID: req.OrderID},
		})
	}
	if len(result.Trades) > 0 {
		events = append(events, e.executedEvent(req.RequestID, req.OrderID, result))
	}

	events = append(events, e.activationEvents(activations)...)
	events = append(events, e.executionEvents(executions)...)
	return events
}

// rejectionReason maps a failure outcome to the single reason published on
// the rejection event.
func rejectionReason(req *requestv1.EnterOrderRequest, outcome matchingv1.Outcome) (string, bool) {
	switch outcome {
	case matchingv1.OutcomeNotEnoughCredit:
		return requestv1.ReasonBuyerHasNotEnoughCredit, true
	case matchingv1.OutcomeNotEnoughPositions:
		return requestv1.ReasonSellerHasNotEnoughPositions, true
	case matchingv1.OutcomeMinExecQuantityNotMet:
		return requestv1.ReasonMinExecQuantityNotMet, true
	case matchingv1.OutcomeDisallowedMinExecOnUpdate:
		return requestv1.ReasonCannotChangeMinExecQuantity, true
	case matchingv1.OutcomeAuctionModeConflict:
		if req.EntryType == requestv1.EntryTypeNew {
			return requestv1.ReasonStopOrderEntryInAuction, true
		}
		return requestv1.ReasonStopOrderChangeInAuction, true
	default:
		return "", false
	}
}

func (e *Engine) handleDeleteOrder(req *requestv1.DeleteOrderRequest) []*eventv1.Event {
	reasons := req.Validate()
	if req.ISIN != e.security.ISIN {
		reasons = append(reasons, requestv1.ReasonUnknownISIN)
	}
	if len(reasons) > 0 {
		return []*eventv1.Event{e.rejectedEvent(req.RequestID, req.OrderID, reasons)}
	}

	result, err := e.security.DeleteOrder(req)
	if err != nil {
		return []*eventv1.Event{e.rejectedEvent(req.RequestID, req.OrderID, []string{err.Error()})}
	}

	events := []*eventv1.Event{{
		Type:         eventv1.TypeOrderDeleted,
		OrderDeleted: &eventv1.OrderDeletedPayload{RequestID: req.RequestID, OrderID: req.OrderID},
	}}
	if result != nil && result.Outcome == matchingv1.OutcomeAuctionBookChanged {
		events = append(events, e.openingPriceEvent(result))
	}
	return events
}

func (e *Engine) handleChangeState(req *requestv1.ChangeStateRequest) []*eventv1.Event {
	changeResult := e.security.ChangeState(req.TargetState)

	var openResults []*matchingv1.MatchResult
	if changeResult.Kind == matchingv1.StateChangeVirtual {
		openResults = e.security.Open(e.auctionMatcher)
	}

	var activations, executions []*matchingv1.MatchResult
	if e.security.Mode == matchingv1.ModeContinuous {
		activations = e.security.HandleActivation()
		executions = e.security.ExecuteActivatedStopOrders(e.matcher)
	}

	events := []*eventv1.Event{{
		Type:         eventv1.TypeStateChanged,
		StateChanged: &eventv1.StateChangedPayload{ISIN: e.security.ISIN, State: req.TargetState},
	}}
	for _, result := range openResults {
		for _, trade := range result.Trades {
			e.metrics.TradesTotal.Inc()
			e.metrics.TradedQuantity.Add(float64(trade.Quantity))
			events = append(events, &eventv1.Event{
				Type:          eventv1.TypeTradeExecuted,
				TradeExecuted: &eventv1.TradeExecutedPayload{TradeInfo: eventv1.NewTradeInfo(trade)},
			})
		}
	}
	events = append(events, e.activationEvents(activations)...)
	events = append(events, e.executionEvents(executions)...)
	return events
}

func (e *Engine) rejectedEvent(requestID, orderID int64, reasons []string) *eventv1.Event {
	return &eventv1.Event{
		Type: eventv1.TypeOrderRejected,
		OrderRejected: &eventv1.OrderRejectedPayload{
			RequestID: requestID,
			OrderID:   orderID,
			Reasons:   reasons,
		},
	}
}

func (e *Engine) openingPriceEvent(result *matchingv1.MatchResult) *eventv1.Event {
	return &eventv1.Event{
		Type: eventv1.TypeOpeningPrice,
		OpeningPrice: &eventv1.OpeningPricePayload{
			ISIN:             e.security.ISIN,
			OpeningPrice:     result.OpeningPrice,
			TradableQuantity: result.TradableQuantity,
		},
	}
}

func (e *Engine) executedEvent(requestID, orderID int64, result *matchingv1.MatchResult) *eventv1.Event {
	trades := make([]eventv1.TradeInfo, 0, len(result.Trades))
	for _, trade := range result.Trades {
		e.metrics.TradesTotal.Inc()
		e.metrics.TradedQuantity.Add(float64(trade.Quantity))
		trades = append(trades, eventv1.NewTradeInfo(trade))
	}
	return &eventv1.Event{
		Type: eventv1.TypeOrderExecuted,
		OrderExecuted: &eventv1.OrderExecutedPayload{
			RequestID: requestID,
			OrderID:   orderID,
			Trades:    trades,
		},
	}
}

func (e *Engine) activationEvents(results []*matchingv1.MatchResult) []*eventv1.Event {
	var events []*eventv1.Event
	for _, result := range results {
		e.metrics.ActivationsTotal.Inc()
		events = append(events, &eventv1.Event{
			Type: eventv1.TypeOrderActivated,
			OrderActivated: &eventv1.OrderActivatedPayload{
				RequestID: result.Remainder.RequestID,
				OrderID:   result.Remainder.ID,
			},
		})
	}
	return events
}

// executionEvents publishes the outcome of the activation cascade: nested
// activations surface as activated events, executions with fills surface as
// executed events keyed by the activated order's entry request.
func (e *Engine) executionEvents(results []*matchingv1.MatchResult) []*eventv1.Event {
	var events []*eventv1.Event
	for _, result := range results {
		if result.Outcome == matchingv1.OutcomeStopOrderActivated {
			events = append(events, e.activationEvents([]*matchingv1.MatchResult{result})...)
			continue
		}
		if result.Remainder != nil && len(result.Trades) > 0 {
			events = append(events, e.executedEvent(result.Remainder.RequestID, result.Remainder.ID, result))
		}
	}
	return events
}
