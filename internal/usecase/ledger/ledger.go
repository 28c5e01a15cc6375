package ledger

import (
	"sync"

	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
)

// Repository holds the brokers and shareholders known to the engine. Brokers
// and shareholders are shared across instruments, so access is guarded for
// multi-instrument deployments.
type Repository struct {
	mu           sync.RWMutex
	brokers      map[int64]*ledgerv1.Broker
	shareholders map[int64]*ledgerv1.Shareholder
}

// NewRepository creates an empty ledger repository.
func NewRepository() *Repository {
	return &Repository{
		brokers:      make(map[int64]*ledgerv1.Broker),
		shareholders: make(map[int64]*ledgerv1.Shareholder),
	}
}

// FindBrokerByID returns the broker with the given id, or nil.
func (r *Repository) FindBrokerByID(id int64) *ledgerv1.Broker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.brokers[id]
}

// AddBroker registers a broker.
func (r *Repository) AddBroker(broker *ledgerv1.Broker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brokers[broker.ID] = broker
}

// FindShareholderByID returns the shareholder with the given id, or nil.
func (r *Repository) FindShareholderByID(id int64) *ledgerv1.Shareholder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.shareholders[id]
}

// AddShareholder registers a shareholder.
func (r *Repository) AddShareholder(shareholder *ledgerv1.Shareholder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shareholders[shareholder.ID] = shareholder
}

// Brokers returns every registered broker.
func (r *Repository) Brokers() []*ledgerv1.Broker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	brokers := make([]*ledgerv1.Broker, 0, len(r.brokers))
	for _, broker := range r.brokers {
		brokers = append(brokers, broker)
	}
	return brokers
}

// Shareholders returns every registered shareholder.
func (r *Repository) Shareholders() []*ledgerv1.Shareholder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shareholders := make([]*ledgerv1.Shareholder, 0, len(r.shareholders))
	for _, shareholder := range r.shareholders {
		shareholders = append(shareholders, shareholder)
	}
	return shareholders
}
