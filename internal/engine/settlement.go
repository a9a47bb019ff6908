package engine

import (
	"fmt"
	"time"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/utils"
)

// SettleInput carries the negotiable closing terms.
type SettleInput struct {
	// NegotiatedFinalCents, when set, replaces the computed gross
	// total as the final amount.
	NegotiatedFinalCents *int64
	PaymentMode          domain.PaymentMode
	PaymentRef           string
	Notes                string
}

// Settle reconciles the order and closes it. It fails while any line
// still has outstanding units, snapshots the breakdown as of the
// settlement date, resolves the final amount against advances paid,
// and transitions the order to SETTLED. The transition is terminal:
// no return or advance can be recorded afterwards.
func Settle(order *domain.RentalOrder, asOf time.Time, in SettleInput) (*domain.SettlementRecord, error) {
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %d is %s", ErrOrderAlreadySettled, order.ID, order.Status)
	}
	if !order.Status.CanTransitionTo(domain.OrderStatusSettled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, domain.OrderStatusSettled)
	}
	if order.HasOutstanding() {
		return nil, fmt.Errorf("%w: order %d", ErrOutstandingItemsRemain, order.ID)
	}

	bd := ComputeBreakdown(order, asOf)

	final := bd.GrossTotalCents
	if in.NegotiatedFinalCents != nil {
		final = *in.NegotiatedFinalCents
	}

	settledOn := utils.DateOnly(asOf)
	rec := &domain.SettlementRecord{
		OrderID:              order.ID,
		SettlementDate:       settledOn,
		Breakdown:            bd,
		NegotiatedFinalCents: in.NegotiatedFinalCents,
		FinalAmountCents:     final,
		AdvancesPaidCents:    bd.AdvancesPaidCents,
		BalanceCents:         final - bd.AdvancesPaidCents,
		PaymentMode:          in.PaymentMode,
		PaymentRef:           in.PaymentRef,
		Notes:                in.Notes,
		CreatedOn:            time.Now().UTC(),
	}

	order.Status = domain.OrderStatusSettled
	order.SettlementDate = &settledOn
	return rec, nil
}

// Activate moves a draft order into service.
func Activate(order *domain.RentalOrder) error {
	if !order.Status.CanTransitionTo(domain.OrderStatusActive) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, domain.OrderStatusActive)
	}
	order.Status = domain.OrderStatusActive
	return nil
}

// Cancel terminates a draft or active order without settlement.
func Cancel(order *domain.RentalOrder) error {
	if !order.Status.CanTransitionTo(domain.OrderStatusCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, domain.OrderStatusCancelled)
	}
	order.Status = domain.OrderStatusCancelled
	return nil
}
