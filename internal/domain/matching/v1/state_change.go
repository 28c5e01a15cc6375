package matchingv1

// StateChangeKind classifies a matching-state transition.
type StateChangeKind string

const (
	// StateChangeReal marks a transition out of continuous mode. It takes
	// effect directly.
	StateChangeReal StateChangeKind = "REAL"
	// StateChangeVirtual marks a transition out of auction mode. It is
	// preceded by an uncrossing pass reported separately.
	StateChangeVirtual StateChangeKind = "VIRTUAL"
)

// StateChangeResult carries the kind of a completed matching-state transition.
type StateChangeResult struct {
	Kind StateChangeKind `json:"kind"`
}

// RealStateChange creates a result for a transition out of continuous mode.
func RealStateChange() *StateChangeResult {
	return &StateChangeResult{Kind: StateChangeReal}
}

// VirtualStateChange creates a result for a transition out of auction mode.
func VirtualStateChange() *StateChangeResult {
	return &StateChangeResult{Kind: StateChangeVirtual}
}
