package engine

import (
	"testing"

	"siteledger-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validReturn(order *domain.RentalOrder, qty int32) domain.ReturnEvent {
	return domain.ReturnEvent{
		ID:         uuid.New(),
		LineID:     order.Lines[0].ID,
		ReturnDate: date("2024-01-18"),
		Quantity:   qty,
		Condition:  domain.ReturnConditionGood,
	}
}

func TestApplyReturn_Success(t *testing.T) {
	order := testOrder()
	ev := validReturn(order, 4)

	err := ApplyReturn(order, ev)
	assert.NoError(t, err)

	line := &order.Lines[0]
	assert.Equal(t, int32(4), line.QuantityReturned)
	assert.Equal(t, int32(6), line.QuantityOutstanding())
	assert.Len(t, line.Returns, 1)
	assert.Equal(t, order.ID, line.Returns[0].OrderID)
	assert.False(t, line.Returns[0].CreatedOn.IsZero())
}

func TestApplyReturn_NoSuchLine(t *testing.T) {
	order := testOrder()
	ev := validReturn(order, 4)
	ev.LineID = 999

	err := ApplyReturn(order, ev)
	assert.ErrorIs(t, err, ErrNoSuchLine)
	assert.Empty(t, order.Lines[0].Returns)
}

func TestApplyReturn_InvalidQuantity(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		order := testOrder()
		err := ApplyReturn(order, validReturn(order, 0))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Negative", func(t *testing.T) {
		order := testOrder()
		err := ApplyReturn(order, validReturn(order, -2))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Above outstanding", func(t *testing.T) {
		order := testOrder()
		err := ApplyReturn(order, validReturn(order, 11))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, int32(0), order.Lines[0].QuantityReturned, "order untouched on failure")
	})

	t.Run("Outstanding shrinks with each return", func(t *testing.T) {
		order := testOrder()
		assert.NoError(t, ApplyReturn(order, validReturn(order, 7)))
		err := ApplyReturn(order, validReturn(order, 4))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.NoError(t, ApplyReturn(order, validReturn(order, 3)))
		assert.Equal(t, int32(0), order.Lines[0].QuantityOutstanding())
	})
}

func TestApplyReturn_InvalidDate(t *testing.T) {
	order := testOrder()
	ev := validReturn(order, 4)
	ev.ReturnDate = date("2024-01-14") // day before start

	err := ApplyReturn(order, ev)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestApplyReturn_InvalidCondition(t *testing.T) {
	for _, cond := range []domain.ReturnCondition{"", "PRISTINE", "good", "Damaged"} {
		t.Run(string(cond), func(t *testing.T) {
			order := testOrder()
			ev := validReturn(order, 4)
			ev.Condition = cond

			err := ApplyReturn(order, ev)
			assert.ErrorIs(t, err, ErrInvalidCondition)
			assert.Empty(t, order.Lines[0].Returns, "order untouched on failure")
		})
	}
}

func TestApplyReturn_MissingDamageReason(t *testing.T) {
	for _, cond := range []domain.ReturnCondition{domain.ReturnConditionDamaged, domain.ReturnConditionLost} {
		t.Run(string(cond), func(t *testing.T) {
			order := testOrder()
			ev := validReturn(order, 4)
			ev.Condition = cond

			err := ApplyReturn(order, ev)
			assert.ErrorIs(t, err, ErrMissingDamageReason)

			ev.DamageDescription = "crushed under load"
			ev.DamageCostCents = 5000
			assert.NoError(t, ApplyReturn(order, ev))
		})
	}
}

func TestApplyReturn_TerminalOrder(t *testing.T) {
	for _, status := range []domain.OrderStatus{domain.OrderStatusSettled, domain.OrderStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			order := testOrder()
			order.Status = status
			err := ApplyReturn(order, validReturn(order, 4))
			assert.ErrorIs(t, err, ErrOrderAlreadySettled)
		})
	}
}

func TestApplyReturn_DraftOrderAllowed(t *testing.T) {
	order := testOrder()
	order.Status = domain.OrderStatusDraft
	assert.NoError(t, ApplyReturn(order, validReturn(order, 4)))
}

func TestRecordAdvance(t *testing.T) {
	t.Run("Success appends to ledger", func(t *testing.T) {
		order := testOrder()
		adv := domain.AdvancePayment{
			ID:          uuid.New(),
			AdvanceDate: date("2024-01-16"),
			AmountCents: 200000,
			PaymentMode: domain.PaymentModeBankTransfer,
			PaidBy:      "site office",
		}
		assert.NoError(t, RecordAdvance(order, adv))
		assert.Equal(t, int64(200000), TotalAdvancePaid(order))

		adv.ID = uuid.New()
		adv.AmountCents = 50000
		assert.NoError(t, RecordAdvance(order, adv))
		assert.Equal(t, int64(250000), TotalAdvancePaid(order))
		assert.Len(t, order.Advances, 2)
	})

	t.Run("Non-positive amount rejected", func(t *testing.T) {
		order := testOrder()
		err := RecordAdvance(order, domain.AdvancePayment{AmountCents: 0})
		assert.ErrorIs(t, err, ErrNonPositiveAdvanceAmount)
		err = RecordAdvance(order, domain.AdvancePayment{AmountCents: -100})
		assert.ErrorIs(t, err, ErrNonPositiveAdvanceAmount)
	})

	t.Run("Terminal order rejected", func(t *testing.T) {
		order := testOrder()
		order.Status = domain.OrderStatusCancelled
		err := RecordAdvance(order, domain.AdvancePayment{AmountCents: 1000})
		assert.ErrorIs(t, err, ErrOrderAlreadySettled)
	})
}
