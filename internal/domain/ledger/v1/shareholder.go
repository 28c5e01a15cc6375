package ledgerv1

// Shareholder represents an owner of positions, keyed by security ISIN.
type Shareholder struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Positions map[string]int64 `json:"positions"`
}

// NewShareholder creates a shareholder with no positions.
func NewShareholder(id int64, name string) *Shareholder {
	return &Shareholder{
		ID:        id,
		Name:      name,
		Positions: make(map[string]int64),
	}
}

// IncPosition increases the position held on the given security.
func (s *Shareholder) IncPosition(isin string, amount int64) {
	s.Positions[isin] += amount
}

// DecPosition decreases the position held on the given security.
func (s *Shareholder) DecPosition(isin string, amount int64) {
	s.Positions[isin] -= amount
}

// HasEnoughPositionsOn reports whether the held position on the given security
// covers amount.
func (s *Shareholder) HasEnoughPositionsOn(isin string, amount int64) bool {
	return s.Positions[isin] >= amount
}
