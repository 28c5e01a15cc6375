package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
)

func testBroker() *ledgerv1.Broker {
	return ledgerv1.NewBroker(1, "broker", 1_000_000)
}

func testShareholder() *ledgerv1.Shareholder {
	sh := ledgerv1.NewShareholder(1, "shareholder")
	sh.IncPosition("IRO1MAPN0001", 100_000)
	return sh
}

func TestOrder_VisibleQuantity(t *testing.T) {
	broker := testBroker()
	shareholder := testShareholder()

	t.Run("limit order shows full quantity", func(t *testing.T) {
		order := NewOrder(1, "IRO1MAPN0001", SideBuy, 500, 100, broker, shareholder, 0)
		assert.Equal(t, int64(500), order.VisibleQuantity())
	})

	t.Run("new iceberg shows full quantity", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideBuy, 500, 100, broker, shareholder, 100, 0)
		assert.Equal(t, int64(500), order.VisibleQuantity())
	})

	t.Run("queued iceberg shows displayed slice", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideBuy, 500, 100, broker, shareholder, 100, 0)
		order.Queue()
		assert.Equal(t, int64(100), order.VisibleQuantity())
	})

	t.Run("peak above quantity caps the slice", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideBuy, 80, 100, broker, shareholder, 100, 0)
		order.Queue()
		assert.Equal(t, int64(80), order.VisibleQuantity())
	})
}

func TestOrder_DecreaseQuantity(t *testing.T) {
	broker := testBroker()
	shareholder := testShareholder()

	t.Run("queued iceberg consumes displayed slice too", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideSell, 500, 100, broker, shareholder, 100, 0)
		order.Queue()
		order.DecreaseQuantity(60)
		assert.Equal(t, int64(440), order.Quantity)
		assert.Equal(t, int64(40), order.DisplayedQuantity)
	})

	t.Run("replenish refreshes the slice from the hidden part", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideSell, 150, 100, broker, shareholder, 100, 0)
		order.Queue()
		order.DecreaseQuantity(100)
		order.Replenish()
		assert.Equal(t, int64(50), order.DisplayedQuantity)
	})

	t.Run("decrease beyond displayed slice panics", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideSell, 500, 100, broker, shareholder, 100, 0)
		order.Queue()
		assert.Panics(t, func() { order.DecreaseQuantity(150) })
	})

	t.Run("decrease beyond remaining quantity panics", func(t *testing.T) {
		order := NewOrder(1, "IRO1MAPN0001", SideSell, 100, 100, broker, shareholder, 0)
		assert.Panics(t, func() { order.DecreaseQuantity(150) })
	})
}

func TestOrder_ApplyUpdate_Iceberg(t *testing.T) {
	broker := testBroker()
	shareholder := testShareholder()

	t.Run("growing peak refreshes display from quantity", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideSell, 500, 100, broker, shareholder, 100, 0)
		order.Queue()
		order.DecreaseQuantity(60)

		order.ApplyUpdate(440, 100, 200, 0)
		assert.Equal(t, int64(200), order.DisplayedQuantity)
		assert.Equal(t, int64(200), order.PeakSize)
	})

	t.Run("shrinking peak caps the current slice", func(t *testing.T) {
		order := NewIcebergOrder(1, "IRO1MAPN0001", SideSell, 500, 100, broker, shareholder, 100, 0)
		order.Queue()

		order.ApplyUpdate(500, 100, 50, 0)
		assert.Equal(t, int64(50), order.DisplayedQuantity)
	})
}

func TestOrder_MinExecConditionMet(t *testing.T) {
	broker := testBroker()
	shareholder := testShareholder()

	order := NewOrder(1, "IRO1MAPN0001", SideBuy, 500, 100, broker, shareholder, 200)
	require.False(t, order.MinExecConditionMet())

	order.DecreaseQuantity(200)
	assert.True(t, order.MinExecConditionMet())

	t.Run("updated orders are exempt", func(t *testing.T) {
		order := NewOrder(2, "IRO1MAPN0001", SideBuy, 500, 100, broker, shareholder, 200)
		order.MarkAsNew()
		assert.True(t, order.MinExecConditionMet())
	})
}

func TestOrder_Activation(t *testing.T) {
	broker := testBroker()
	shareholder := testShareholder()

	buy := NewStopLimitOrder(1, "IRO1MAPN0001", SideBuy, 100, 200, broker, shareholder, 0, 150, 11)
	sell := NewStopLimitOrder(2, "IRO1MAPN0001", SideSell, 100, 200, broker, shareholder, 0, 150, 12)

	assert.True(t, buy.IsActivated(150))
	assert.True(t, buy.IsActivated(160))
	assert.False(t, buy.IsActivated(140))

	assert.True(t, sell.IsActivated(150))
	assert.True(t, sell.IsActivated(140))
	assert.False(t, sell.IsActivated(160))

	buy.Activate()
	assert.Equal(t, KindLimit, buy.Kind)
	assert.Equal(t, int64(11), buy.RequestID)
}

func TestOrder_Snapshot(t *testing.T) {
	broker := testBroker()
	shareholder := testShareholder()

	order := NewOrder(1, "IRO1MAPN0001", SideBuy, 500, 100, broker, shareholder, 0)
	snapshot := order.SnapshotWithQuantity(300)

	assert.Equal(t, StatusSnapshot, snapshot.Status)
	assert.Equal(t, int64(300), snapshot.Quantity)

	order.DecreaseQuantity(100)
	assert.Equal(t, int64(300), snapshot.Quantity)
}
