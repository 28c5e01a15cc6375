package ledgerv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroker_Credit(t *testing.T) {
	broker := NewBroker(1, "broker", 1000)

	broker.DecreaseCredit(400)
	assert.Equal(t, int64(600), broker.Credit)

	broker.IncreaseCredit(100)
	assert.Equal(t, int64(700), broker.Credit)

	assert.True(t, broker.HasEnoughCredit(700))
	assert.False(t, broker.HasEnoughCredit(701))
}

func TestBroker_ReservedCredit(t *testing.T) {
	broker := NewBroker(1, "broker", 1000)

	assert.True(t, broker.ReserveCredit(600))
	assert.Equal(t, int64(600), broker.ReservedCredit)

	// The reserved part no longer backs new spending.
	assert.False(t, broker.HasEnoughCredit(500))
	assert.True(t, broker.HasEnoughCredit(400))
	assert.False(t, broker.ReserveCredit(500))

	broker.ReleaseReservedCredit(600)
	assert.Equal(t, int64(0), broker.ReservedCredit)
	assert.True(t, broker.HasEnoughCredit(1000))
}

func TestShareholder_Positions(t *testing.T) {
	shareholder := NewShareholder(1, "shareholder")

	shareholder.IncPosition("IRO1MAPN0001", 500)
	assert.True(t, shareholder.HasEnoughPositionsOn("IRO1MAPN0001", 500))
	assert.False(t, shareholder.HasEnoughPositionsOn("IRO1MAPN0001", 501))

	shareholder.DecPosition("IRO1MAPN0001", 200)
	assert.True(t, shareholder.HasEnoughPositionsOn("IRO1MAPN0001", 300))
	assert.False(t, shareholder.HasEnoughPositionsOn("OTHER", 1))
}
