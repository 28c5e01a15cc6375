package matchingv1

// Mode represents the matching regime of an instrument.
type Mode string

const (
	// ModeContinuous represents immediate price-time-priority matching.
	ModeContinuous Mode = "CONTINUOUS"
	// ModeAuction represents periodic uncrossing at a single clearing price.
	ModeAuction Mode = "AUCTION"
)
