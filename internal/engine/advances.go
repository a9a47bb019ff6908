package engine

import (
	"fmt"
	"time"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/utils"
)

// RecordAdvance appends a payment to the order's advance ledger.
// Advances cannot be recorded against a settled or cancelled order.
func RecordAdvance(order *domain.RentalOrder, adv domain.AdvancePayment) error {
	if adv.AmountCents <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveAdvanceAmount, adv.AmountCents)
	}
	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: order %d is %s", ErrOrderAlreadySettled, order.ID, order.Status)
	}

	adv.OrderID = order.ID
	adv.AdvanceDate = utils.DateOnly(adv.AdvanceDate)
	if adv.CreatedOn.IsZero() {
		adv.CreatedOn = time.Now().UTC()
	}
	order.Advances = append(order.Advances, adv)
	return nil
}

// TotalAdvancePaid sums the advance ledger.
func TotalAdvancePaid(order *domain.RentalOrder) int64 {
	var total int64
	for i := range order.Advances {
		total += order.Advances[i].AmountCents
	}
	return total
}
