package engine

import (
	"testing"

	"siteledger-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func settleReady() *domain.RentalOrder {
	order := testOrder()
	returned(&order.Lines[0], "2024-01-20", 10)
	return order
}

func TestSettle_GateOnOutstanding(t *testing.T) {
	order := testOrder()
	returned(&order.Lines[0], "2024-01-20", 8) // 2 still out

	rec, err := Settle(order, date("2024-01-25"), SettleInput{})
	assert.ErrorIs(t, err, ErrOutstandingItemsRemain)
	assert.Nil(t, rec)
	assert.Equal(t, domain.OrderStatusActive, order.Status, "order stays active on failure")
}

func TestSettle_ComputedTotal(t *testing.T) {
	order := settleReady()

	rec, err := Settle(order, date("2024-01-25"), SettleInput{
		PaymentMode: domain.PaymentModeBankTransfer,
		PaymentRef:  "TXN-4471",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(600000), rec.FinalAmountCents) // 10 * 6 * 100.00
	assert.Nil(t, rec.NegotiatedFinalCents)
	assert.Equal(t, int64(600000), rec.BalanceCents)
	assert.Equal(t, domain.OrderStatusSettled, order.Status)
	assert.NotNil(t, order.SettlementDate)
	assert.Equal(t, date("2024-01-25"), *order.SettlementDate)
	assert.Equal(t, rec.Breakdown.GrossTotalCents, rec.FinalAmountCents)
}

func TestSettle_NegotiatedOverride(t *testing.T) {
	order := settleReady()
	negotiated := int64(550000)

	rec, err := Settle(order, date("2024-01-25"), SettleInput{NegotiatedFinalCents: &negotiated})
	assert.NoError(t, err)
	assert.Equal(t, int64(550000), rec.FinalAmountCents)
	assert.Equal(t, int64(600000), rec.Breakdown.GrossTotalCents, "snapshot keeps the computed figure")
}

func TestSettle_BalanceSignConvention(t *testing.T) {
	tests := []struct {
		name            string
		advancesCents   int64
		expectedBalance int64
	}{
		{"Site owes", 200000, 400000},
		{"Exactly covered", 600000, 0},
		{"Refund due", 700000, -100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := settleReady()
			assert.NoError(t, RecordAdvance(order, domain.AdvancePayment{
				AdvanceDate: date("2024-01-16"),
				AmountCents: tt.advancesCents,
				PaymentMode: domain.PaymentModeCash,
			}))

			rec, err := Settle(order, date("2024-01-25"), SettleInput{})
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBalance, rec.BalanceCents)
			assert.Equal(t, tt.advancesCents, rec.AdvancesPaidCents)
		})
	}
}

func TestSettle_TerminalStates(t *testing.T) {
	t.Run("Already settled", func(t *testing.T) {
		order := settleReady()
		_, err := Settle(order, date("2024-01-25"), SettleInput{})
		assert.NoError(t, err)

		_, err = Settle(order, date("2024-01-26"), SettleInput{})
		assert.ErrorIs(t, err, ErrOrderAlreadySettled)
	})

	t.Run("Cancelled", func(t *testing.T) {
		order := settleReady()
		assert.NoError(t, Cancel(order))
		_, err := Settle(order, date("2024-01-25"), SettleInput{})
		assert.ErrorIs(t, err, ErrOrderAlreadySettled)
	})

	t.Run("No mutation after settlement", func(t *testing.T) {
		order := settleReady()
		_, err := Settle(order, date("2024-01-25"), SettleInput{})
		assert.NoError(t, err)

		assert.ErrorIs(t, ApplyReturn(order, validReturn(order, 1)), ErrOrderAlreadySettled)
		assert.ErrorIs(t, RecordAdvance(order, domain.AdvancePayment{AmountCents: 100}), ErrOrderAlreadySettled)
	})
}

func TestSettle_DraftOrderNotEligible(t *testing.T) {
	order := settleReady()
	order.Status = domain.OrderStatusDraft

	_, err := Settle(order, date("2024-01-25"), SettleInput{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestActivateAndCancel(t *testing.T) {
	t.Run("Draft activates", func(t *testing.T) {
		order := testOrder()
		order.Status = domain.OrderStatusDraft
		assert.NoError(t, Activate(order))
		assert.Equal(t, domain.OrderStatusActive, order.Status)
	})

	t.Run("Active does not re-activate", func(t *testing.T) {
		order := testOrder()
		assert.ErrorIs(t, Activate(order), ErrInvalidTransition)
	})

	t.Run("Draft and active cancel", func(t *testing.T) {
		order := testOrder()
		order.Status = domain.OrderStatusDraft
		assert.NoError(t, Cancel(order))

		order = testOrder()
		assert.NoError(t, Cancel(order))
	})

	t.Run("Terminal states frozen", func(t *testing.T) {
		order := testOrder()
		order.Status = domain.OrderStatusSettled
		assert.ErrorIs(t, Cancel(order), ErrInvalidTransition)
		assert.ErrorIs(t, Activate(order), ErrInvalidTransition)
	})
}
