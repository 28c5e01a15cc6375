package orderbookv1

// Side represents the side of an order.
type Side string

const (
	// SideBuy represents a buy order.
	SideBuy Side = "BUY"
	// SideSell represents a sell order.
	SideSell Side = "SELL"
)

// Opposite returns the opposite side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}
