package ledger

import (
	"encoding/json"
	"os"

	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
	"github.com/mrmh13801225/matching-engine/pkg/errors"
)

// Seed is the file format used to register brokers and shareholders at
// startup. A snapshot restore overrides seeded entries with the same id.
type Seed struct {
	Brokers      []*ledgerv1.Broker      `json:"brokers"`
	Shareholders []*ledgerv1.Shareholder `json:"shareholders"`
}

// LoadSeedFile registers the brokers and shareholders listed in the given
// JSON file.
func (r *Repository) LoadSeedFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.NewTracer("ledger_seed_read").Wrap(err)
	}

	var seed Seed
	if err := json.Unmarshal(buf, &seed); err != nil {
		return errors.NewTracer("ledger_seed_decode").Wrap(err)
	}

	for _, broker := range seed.Brokers {
		r.AddBroker(broker)
	}
	for _, shareholder := range seed.Shareholders {
		r.AddShareholder(shareholder)
	}
	return nil
}
