package requestv1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	orderbookv1 "github.com/mrmh13801225/matching-engine/internal/domain/orderbook/v1"
)

func validRequest() EnterOrderRequest {
	return EnterOrderRequest{
		RequestID: 1,
		EntryType: EntryTypeNew,
		OrderID:   1,
		ISIN:      "IRO1MAPN0001",
		BrokerID:  1, ShareholderID: 1,
		Side:     orderbookv1.SideBuy,
		Quantity: 100,
		Price:    500,
	}
}

func TestEnterOrderRequest_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*EnterOrderRequest)
		reasons []string
	}{
		{
			name:   "valid limit order",
			mutate: func(r *EnterOrderRequest) {},
		},
		{
			name:   "valid iceberg order",
			mutate: func(r *EnterOrderRequest) { r.PeakSize = 20 },
		},
		{
			name:   "valid stop order",
			mutate: func(r *EnterOrderRequest) { r.StopPrice = 550 },
		},
		{
			name:    "non-positive quantity",
			mutate:  func(r *EnterOrderRequest) { r.Quantity = 0 },
			reasons: []string{ReasonQuantityNotPositive},
		},
		{
			name:    "non-positive price",
			mutate:  func(r *EnterOrderRequest) { r.Price = -1 },
			reasons: []string{ReasonPriceNotPositive},
		},
		{
			name:    "invalid order id",
			mutate:  func(r *EnterOrderRequest) { r.OrderID = 0 },
			reasons: []string{ReasonInvalidOrderID},
		},
		{
			name:    "peak size at quantity",
			mutate:  func(r *EnterOrderRequest) { r.PeakSize = 100 },
			reasons: []string{ReasonInvalidPeakSize},
		},
		{
			name:    "negative peak size",
			mutate:  func(r *EnterOrderRequest) { r.PeakSize = -1 },
			reasons: []string{ReasonInvalidPeakSize},
		},
		{
			name:    "negative min exec quantity",
			mutate:  func(r *EnterOrderRequest) { r.MinimumExecutionQuantity = -1 },
			reasons: []string{ReasonMinExecQuantityNegative},
		},
		{
			name:    "min exec quantity above quantity",
			mutate:  func(r *EnterOrderRequest) { r.MinimumExecutionQuantity = 101 },
			reasons: []string{ReasonMinExecQuantityTooBig},
		},
		{
			name:    "stop order with min exec quantity",
			mutate:  func(r *EnterOrderRequest) { r.StopPrice = 550; r.MinimumExecutionQuantity = 10 },
			reasons: []string{ReasonStopOrderCannotHaveMinExec},
		},
		{
			name:    "stop order with peak size",
			mutate:  func(r *EnterOrderRequest) { r.StopPrice = 550; r.PeakSize = 20 },
			reasons: []string{ReasonStopOrderCannotBeIceberg},
		},
		{
			name:    "negative stop price",
			mutate:  func(r *EnterOrderRequest) { r.StopPrice = -1 },
			reasons: []string{ReasonInvalidStopPrice},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			assert.ElementsMatch(t, tc.reasons, req.Validate(1, 1))
		})
	}
}

func TestEnterOrderRequest_Validate_LotAndTick(t *testing.T) {
	req := validRequest()
	req.Quantity = 150
	req.Price = 505

	reasons := req.Validate(100, 10)
	assert.ElementsMatch(t, []string{
		ReasonQuantityNotMultipleOfLot,
		ReasonPriceNotMultipleOfTick,
	}, reasons)
}

func TestDeleteOrderRequest_Validate(t *testing.T) {
	req := DeleteOrderRequest{RequestID: 1, ISIN: "IRO1MAPN0001", Side: orderbookv1.SideBuy, OrderID: 0}
	assert.Equal(t, []string{ReasonInvalidOrderID}, req.Validate())

	req.OrderID = 9
	assert.Empty(t, req.Validate())
}

func TestEnterOrderRequest_VariantFlags(t *testing.T) {
	req := validRequest()
	assert.False(t, req.IsIceberg())
	assert.False(t, req.IsStopLimit())

	req.PeakSize = 20
	assert.True(t, req.IsIceberg())
	assert.False(t, req.IsStopLimit())

	req.PeakSize = 0
	req.StopPrice = 550
	assert.True(t, req.IsStopLimit())
}
