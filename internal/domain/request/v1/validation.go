package requestv1

// Rejection reasons attached to order-rejected events.
const (
	ReasonInvalidOrderID              = "Invalid order ID"
	ReasonQuantityNotPositive         = "Order quantity is not-positive"
	ReasonPriceNotPositive            = "Order price is not-positive"
	ReasonMinExecQuantityNegative     = "Order minimum execution quantity is negative"
	ReasonMinExecQuantityTooBig       = "Order minimum execution quantity is bigger than order quantity"
	ReasonMinExecQuantityNotMet       = "Order minimum execution quantity has not been met"
	ReasonCannotChangeMinExecQuantity = "Cannot change minimum execution quantity while updating the order"
	ReasonUnknownISIN                 = "Unknown security ISIN"
	ReasonOrderIDNotFound             = "Order ID not found in the order book"
	ReasonInvalidPeakSize             = "Iceberg order peak size is out of range"
	ReasonPeakSizeOnNonIceberg        = "Cannot specify peak size for a non-iceberg order"
	ReasonUnknownBrokerID             = "Unknown broker ID"
	ReasonUnknownShareholderID        = "Unknown shareholder ID"
	ReasonBuyerHasNotEnoughCredit     = "Buyer has not enough credit"
	ReasonQuantityNotMultipleOfLot    = "Quantity is not a multiple of security lot size"
	ReasonPriceNotMultipleOfTick      = "Price is not a multiple of security tick size"
	ReasonSellerHasNotEnoughPositions = "Seller has not enough positions"
	ReasonStopOrderCannotBeIceberg    = "Stop limit order cannot be iceberg"
	ReasonInvalidStopPrice            = "Invalid stop price"
	ReasonStopOrderCannotHaveMinExec  = "Stop limit order cannot have minimum execution quantity"
	ReasonStopOrderChangeInAuction    = "Cannot change stop limit order in auction state"
	ReasonStopOrderDeleteInAuction    = "Cannot delete stop limit order in auction state"
	ReasonStopOrderEntryInAuction     = "Cannot enter stop limit order in auction state"
)

// Validate checks the request fields against the instrument's lot and tick
// sizes and returns every violated rule.
func (r *EnterOrderRequest) Validate(lotSize, tickSize int64) []string {
	var reasons []string

	if r.MinimumExecutionQuantity > 0 && r.StopPrice > 0 {
		reasons = append(reasons, ReasonStopOrderCannotHaveMinExec)
	}
	if r.StopPrice < 0 {
		reasons = append(reasons, ReasonInvalidStopPrice)
	}
	if r.PeakSize > 0 && r.StopPrice > 0 {
		reasons = append(reasons, ReasonStopOrderCannotBeIceberg)
	}
	if r.PeakSize < 0 || (r.PeakSize > 0 && r.PeakSize >= r.Quantity) {
		reasons = append(reasons, ReasonInvalidPeakSize)
	}
	if r.MinimumExecutionQuantity < 0 {
		reasons = append(reasons, ReasonMinExecQuantityNegative)
	}
	if r.Quantity < r.MinimumExecutionQuantity {
		reasons = append(reasons, ReasonMinExecQuantityTooBig)
	}
	if r.OrderID <= 0 {
		reasons = append(reasons, ReasonInvalidOrderID)
	}
	if r.Quantity <= 0 {
		reasons = append(reasons, ReasonQuantityNotPositive)
	}
	if r.Price <= 0 {
		reasons = append(reasons, ReasonPriceNotPositive)
	}
	if lotSize > 0 && r.Quantity%lotSize != 0 {
		reasons = append(reasons, ReasonQuantityNotMultipleOfLot)
	}
	if tickSize > 0 && r.Price%tickSize != 0 {
		reasons = append(reasons, ReasonPriceNotMultipleOfTick)
	}

	return reasons
}

// Validate checks the request fields and returns every violated rule.
func (r *DeleteOrderRequest) Validate() []string {
	var reasons []string
	if r.OrderID <= 0 {
		reasons = append(reasons, ReasonInvalidOrderID)
	}
	return reasons
}
