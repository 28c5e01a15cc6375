package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerv1 "github.com/mrmh13801225/matching-engine/internal/domain/ledger/v1"
)

func limitOrder(id int64, side Side, quantity, price int64) *Order {
	return NewOrder(id, "IRO1MAPN0001", side, quantity, price, testBroker(), testShareholder(), 0)
}

func queueIDs(queue []*Order) []int64 {
	ids := make([]int64, 0, len(queue))
	for _, order := range queue {
		ids = append(ids, order.ID)
	}
	return ids
}

func TestOrderBook_Enqueue_PriceTimePriority(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(limitOrder(1, SideBuy, 100, 500))
	book.Enqueue(limitOrder(2, SideBuy, 100, 520))
	book.Enqueue(limitOrder(3, SideBuy, 100, 500))
	book.Enqueue(limitOrder(4, SideBuy, 100, 510))

	assert.Equal(t, []int64{2, 4, 1, 3}, queueIDs(book.BuyQueue()))

	book.Enqueue(limitOrder(5, SideSell, 100, 510))
	book.Enqueue(limitOrder(6, SideSell, 100, 505))
	book.Enqueue(limitOrder(7, SideSell, 100, 510))

	assert.Equal(t, []int64{6, 5, 7}, queueIDs(book.SellQueue()))
}

func TestOrderBook_MatchWithFirst(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(limitOrder(1, SideSell, 100, 500))

	assert.NotNil(t, book.MatchWithFirst(limitOrder(2, SideBuy, 100, 500)))
	assert.Nil(t, book.MatchWithFirst(limitOrder(3, SideBuy, 100, 490)))
	assert.Nil(t, book.MatchWithFirst(limitOrder(4, SideSell, 100, 490)))
}

func TestOrderBook_RestoreOrder(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(limitOrder(1, SideSell, 100, 500))
	book.Enqueue(limitOrder(2, SideSell, 100, 500))

	// A restored order regains the front of its side regardless of arrival.
	restored := limitOrder(2, SideSell, 100, 500)
	book.RestoreOrder(restored)

	assert.Equal(t, []int64{2, 1}, queueIDs(book.SellQueue()))
	assert.Len(t, book.SellQueue(), 2)
}

func TestOrderBook_RemoveByID(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(limitOrder(1, SideBuy, 100, 500))
	book.Enqueue(limitOrder(2, SideBuy, 100, 510))

	assert.True(t, book.RemoveByID(SideBuy, 1))
	assert.False(t, book.RemoveByID(SideBuy, 1))
	assert.Equal(t, []int64{2}, queueIDs(book.BuyQueue()))
}

func TestOrderBook_TotalSellQuantityByShareholder(t *testing.T) {
	book := NewOrderBook()
	shareholder := testShareholder()
	other := ledgerv1.NewShareholder(2, "other")

	first := NewOrder(1, "IRO1MAPN0001", SideSell, 100, 500, testBroker(), shareholder, 0)
	second := NewIcebergOrder(2, "IRO1MAPN0001", SideSell, 300, 510, testBroker(), shareholder, 50, 0)
	third := NewOrder(3, "IRO1MAPN0001", SideSell, 700, 520, testBroker(), other, 0)
	book.Enqueue(first)
	book.Enqueue(second)
	book.Enqueue(third)

	// Hidden iceberg quantity counts toward exposure.
	assert.Equal(t, int64(400), book.TotalSellQuantityByShareholder(shareholder))
	assert.Equal(t, int64(700), book.TotalSellQuantityByShareholder(other))
}

func TestOrderBook_CalculateOpeningPrice(t *testing.T) {
	t.Run("one-sided book falls back toward the reference price", func(t *testing.T) {
		book := NewOrderBook()
		book.Enqueue(limitOrder(1, SideSell, 400, 590))

		price := book.CalculateOpeningPrice(630)
		assert.Equal(t, int64(630), price)
		assert.Equal(t, int64(0), book.TradableQuantity())
	})

	t.Run("crossed book clears at the volume-maximizing price", func(t *testing.T) {
		book := NewOrderBook()
		book.Enqueue(limitOrder(1, SideSell, 400, 590))
		book.Enqueue(limitOrder(2, SideBuy, 300, 600))

		price := book.CalculateOpeningPrice(630)
		assert.Equal(t, int64(600), price)
		assert.Equal(t, int64(300), book.TradableQuantity())
	})

	t.Run("reference inside the optimum band is kept", func(t *testing.T) {
		book := NewOrderBook()
		book.Enqueue(limitOrder(1, SideSell, 300, 580))
		book.Enqueue(limitOrder(2, SideBuy, 300, 620))

		price := book.CalculateOpeningPrice(600)
		assert.Equal(t, int64(600), price)
		assert.Equal(t, int64(300), book.TradableQuantity())
	})

	t.Run("empty book opens at zero", func(t *testing.T) {
		book := NewOrderBook()
		assert.Equal(t, int64(0), book.CalculateOpeningPrice(630))
	})

	t.Run("buy-only book caps at the reference price", func(t *testing.T) {
		book := NewOrderBook()
		book.Enqueue(limitOrder(1, SideBuy, 100, 700))

		assert.Equal(t, int64(630), book.CalculateOpeningPrice(630))
	})
}

func TestOrderBook_PopFirstTradableBuy(t *testing.T) {
	book := NewOrderBook()
	book.Enqueue(limitOrder(1, SideSell, 400, 590))
	book.Enqueue(limitOrder(2, SideBuy, 300, 600))
	book.Enqueue(limitOrder(3, SideBuy, 300, 560))

	book.CalculateOpeningPrice(598)
	require.Equal(t, int64(598), book.OpeningPrice())

	first := book.PopFirstTradableBuy()
	require.NotNil(t, first)
	assert.Equal(t, int64(2), first.ID)

	// The 560 buy cannot trade at 598.
	assert.Nil(t, book.PopFirstTradableBuy())
	assert.Equal(t, []int64{3}, queueIDs(book.BuyQueue()))
}
