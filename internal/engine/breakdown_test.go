package engine

import (
	"testing"

	"siteledger-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeBreakdown_DiscountTransportAdvances(t *testing.T) {
	// Items subtotal 6000.00, discount 10% -> 600.00 off, transport
	// 500.00, no damages -> gross 5900.00; advances 2000.00 ->
	// balance due 3900.00.
	order := testOrder()
	order.DiscountPercent = 10
	order.OutwardTransportCents = 30000
	order.ReturnTransportCents = 20000
	returned(&order.Lines[0], "2024-01-20", 10)
	order.Advances = []domain.AdvancePayment{
		{ID: uuid.New(), OrderID: order.ID, AdvanceDate: date("2024-01-16"), AmountCents: 200000, PaymentMode: domain.PaymentModeCash},
	}

	bd := ComputeBreakdown(order, date("2024-01-20"))

	assert.Equal(t, int64(600000), bd.ItemsSubtotalCents)
	assert.Equal(t, int64(60000), bd.DiscountCents)
	assert.Equal(t, int64(540000), bd.SubtotalAfterDiscountCents)
	assert.Equal(t, int64(50000), bd.TransportCents)
	assert.Equal(t, int64(0), bd.DamagesCents)
	assert.Equal(t, int64(590000), bd.GrossTotalCents)
	assert.Equal(t, int64(200000), bd.AdvancesPaidCents)
	assert.Equal(t, int64(390000), bd.BalanceDueCents)
	assert.Equal(t, int32(6), bd.DaysElapsed)
}

func TestComputeBreakdown_DamagesAccumulate(t *testing.T) {
	order := testOrder()
	line := &order.Lines[0]
	line.Returns = append(line.Returns, domain.ReturnEvent{
		ID:                uuid.New(),
		LineID:            line.ID,
		ReturnDate:        date("2024-01-17"),
		Quantity:          4,
		Condition:         domain.ReturnConditionDamaged,
		DamageDescription: "bent frame",
		DamageCostCents:   15000,
	})
	line.QuantityReturned = 4

	bd := ComputeBreakdown(order, date("2024-01-20"))
	assert.Equal(t, int64(15000), bd.DamagesCents)
	// 4*3*100 + 6*6*100 = 4800.00 items, no discount/transport
	assert.Equal(t, int64(480000+15000), bd.GrossTotalCents)
}

func TestComputeBreakdown_OverdueDerivation(t *testing.T) {
	expected := date("2024-01-25")

	t.Run("Not overdue before expected return", func(t *testing.T) {
		order := testOrder()
		order.ExpectedReturnDate = &expected
		bd := ComputeBreakdown(order, date("2024-01-25"))
		assert.False(t, bd.IsOverdue)
		assert.Equal(t, int32(0), bd.DaysOverdue)
	})

	t.Run("Overdue with outstanding units", func(t *testing.T) {
		order := testOrder()
		order.ExpectedReturnDate = &expected
		bd := ComputeBreakdown(order, date("2024-01-28"))
		assert.True(t, bd.IsOverdue)
		assert.Equal(t, int32(3), bd.DaysOverdue)
	})

	t.Run("Never overdue once fully returned", func(t *testing.T) {
		order := testOrder()
		order.ExpectedReturnDate = &expected
		returned(&order.Lines[0], "2024-01-24", 10)
		bd := ComputeBreakdown(order, date("2024-02-10"))
		assert.False(t, bd.IsOverdue)
		assert.Equal(t, int32(0), bd.DaysOverdue)
	})

	t.Run("No expected return date means never overdue", func(t *testing.T) {
		order := testOrder()
		bd := ComputeBreakdown(order, date("2024-06-01"))
		assert.False(t, bd.IsOverdue)
	})
}

func TestComputeBreakdown_PureAndRepeatable(t *testing.T) {
	order := testOrder()
	order.DiscountPercent = 12.5
	order.OutwardLoadingCents = 7500
	returned(&order.Lines[0], "2024-01-18", 3)

	first := ComputeBreakdown(order, date("2024-02-01"))
	second := ComputeBreakdown(order, date("2024-02-01"))
	assert.Equal(t, first, second)
}

func TestComputeBreakdown_LinesKeepInsertionOrder(t *testing.T) {
	order := testOrder()
	order.Lines = append(order.Lines, domain.RentalOrderLine{
		ID: 11, OrderID: 1, RentalItemID: 101, ItemName: "Mixer",
		Quantity: 1, DailyRateCents: 50000, Position: 2,
	})
	// Storage may hand lines back in any order.
	order.Lines[0], order.Lines[1] = order.Lines[1], order.Lines[0]

	bd := ComputeBreakdown(order, date("2024-01-20"))
	assert.Equal(t, int32(10), bd.Lines[0].LineID)
	assert.Equal(t, int32(11), bd.Lines[1].LineID)
}

func TestComputeBreakdown_DiscountRoundsOnceAtOutput(t *testing.T) {
	// Three lines whose per-line discounts would each round; the
	// discount must be taken on the summed subtotal instead.
	order := testOrder()
	order.Lines = []domain.RentalOrderLine{
		{ID: 1, Quantity: 1, DailyRateCents: 333, Position: 1},
		{ID: 2, Quantity: 1, DailyRateCents: 333, Position: 2},
		{ID: 3, Quantity: 1, DailyRateCents: 333, Position: 3},
	}
	order.DiscountPercent = 5

	bd := ComputeBreakdown(order, order.StartDate) // one day each
	assert.Equal(t, int64(999), bd.ItemsSubtotalCents)
	assert.Equal(t, int64(50), bd.DiscountCents) // round(49.95), not 3*round(16.65)
	assert.Equal(t, int64(949), bd.SubtotalAfterDiscountCents)
}
