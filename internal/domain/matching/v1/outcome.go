package matchingv1

// Outcome classifies the result of processing a request against an instrument.
type Outcome string

const (
	// OutcomeExecuted marks a successful continuous execution.
	OutcomeExecuted Outcome = "EXECUTED"
	// OutcomeNotEnoughCredit marks a rejection for insufficient buyer credit.
	// Any partial trades of the attempt have been rolled back.
	OutcomeNotEnoughCredit Outcome = "NOT_ENOUGH_CREDIT"
	// OutcomeNotEnoughPositions marks a rejection for insufficient seller
	// positions, detected before any mutation.
	OutcomeNotEnoughPositions Outcome = "NOT_ENOUGH_POSITIONS"
	// OutcomeMinExecQuantityNotMet marks a rejection because the fills
	// obtained did not reach the order's minimum execution floor. Any trades
	// of the attempt have been rolled back.
	OutcomeMinExecQuantityNotMet Outcome = "MIN_EXEC_QUANTITY_NOT_MET"
	// OutcomeDisallowedMinExecOnUpdate marks an update that tried to change
	// the minimum execution floor.
	OutcomeDisallowedMinExecOnUpdate Outcome = "DISALLOWED_MIN_EXEC_ON_UPDATE"
	// OutcomeAuctionModeConflict marks a stop-limit entry, update or delete
	// attempted while the instrument is in auction mode.
	OutcomeAuctionModeConflict Outcome = "AUCTION_MODE_CONFLICT"
	// OutcomeStopOrderQueued marks a stop-limit order accepted into the
	// stop-order book.
	OutcomeStopOrderQueued Outcome = "STOP_ORDER_QUEUED"
	// OutcomeStopOrderUpdated marks a dormant stop-limit order updated in
	// place.
	OutcomeStopOrderUpdated Outcome = "STOP_ORDER_UPDATED"
	// OutcomeStopOrderActivated marks a dormant stop-limit order leaving the
	// stop-order book for execution.
	OutcomeStopOrderActivated Outcome = "STOP_ORDER_ACTIVATED"
	// OutcomeOrderAddedToAuction marks an order enqueued while the instrument
	// is in auction mode, with the refreshed equilibrium attached.
	OutcomeOrderAddedToAuction Outcome = "ORDER_ADDED_TO_AUCTION"
	// OutcomeAuctionBookChanged marks an auction-mode book mutation, with the
	// refreshed equilibrium attached.
	OutcomeAuctionBookChanged Outcome = "AUCTION_BOOK_CHANGED"
)
