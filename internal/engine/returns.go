package engine

import (
	"fmt"
	"time"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/utils"
)

// ApplyReturn validates a return event against the order and, only if
// every check passes, appends it to the line's history and updates the
// returned quantity. The order is never partially mutated: a failed
// validation leaves it untouched.
//
// The engine does not detect duplicate submissions; callers that
// retry must de-duplicate on the event id.
func ApplyReturn(order *domain.RentalOrder, ev domain.ReturnEvent) error {
	line := order.Line(ev.LineID)
	if line == nil {
		return fmt.Errorf("%w: line %d on order %d", ErrNoSuchLine, ev.LineID, order.ID)
	}
	if ev.Quantity <= 0 || ev.Quantity > line.QuantityOutstanding() {
		return fmt.Errorf("%w: returning %d with %d outstanding",
			ErrInvalidQuantity, ev.Quantity, line.QuantityOutstanding())
	}
	if utils.DateOnly(ev.ReturnDate).Before(utils.DateOnly(order.StartDate)) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidDate,
			utils.FormatDate(ev.ReturnDate), utils.FormatDate(order.StartDate))
	}
	if !ev.Condition.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCondition, ev.Condition)
	}
	if ev.Condition.RequiresDescription() && ev.DamageDescription == "" {
		return fmt.Errorf("%w: condition %s", ErrMissingDamageReason, ev.Condition)
	}
	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: order %d is %s", ErrOrderAlreadySettled, order.ID, order.Status)
	}

	ev.OrderID = order.ID
	ev.ReturnDate = utils.DateOnly(ev.ReturnDate)
	if ev.CreatedOn.IsZero() {
		ev.CreatedOn = time.Now().UTC()
	}
	line.Returns = append(line.Returns, ev)
	line.QuantityReturned += ev.Quantity
	return nil
}
