package ledgerv1

// Broker represents a brokerage firm holding a credit balance with the venue.
// Part of the credit may be reserved to back dormant buy-side stop orders.
type Broker struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Credit         int64  `json:"credit"`
	ReservedCredit int64  `json:"reservedCredit"`
}

// NewBroker creates a broker with the given starting credit.
func NewBroker(id int64, name string, credit int64) *Broker {
	return &Broker{
		ID:     id,
		Name:   name,
		Credit: credit,
	}
}

// IncreaseCredit adds the given amount to the broker's credit.
func (b *Broker) IncreaseCredit(amount int64) {
	b.Credit += amount
}

// DecreaseCredit removes the given amount from the broker's credit.
func (b *Broker) DecreaseCredit(amount int64) {
	b.Credit -= amount
}

// HasEnoughCredit reports whether the unreserved part of the credit covers amount.
func (b *Broker) HasEnoughCredit(amount int64) bool {
	return b.Credit-b.ReservedCredit >= amount
}

// ReserveCredit puts a hold on amount of the broker's credit. The hold backs a
// dormant buy-side stop order so that it can execute once activated.
func (b *Broker) ReserveCredit(amount int64) bool {
	if b.Credit-b.ReservedCredit >= amount {
		b.ReservedCredit += amount
		return true
	}
	return false
}

// ReleaseReservedCredit lifts a hold previously placed by ReserveCredit.
func (b *Broker) ReleaseReservedCredit(amount int64) {
	b.ReservedCredit -= amount
}
