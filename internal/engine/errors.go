// Package engine holds the rental order cost-accrual and settlement
// logic. Every function is pure or mutates a single order snapshot in
// memory after validating fully; nothing here performs I/O. Callers
// persist the result and must serialize mutations per order id.
package engine

import "errors"

// Validation errors. All are deterministic consequences of bad input
// and safe to retry after correcting it; callers match with errors.Is
// and may surface the messages verbatim.
var (
	ErrNoSuchLine               = errors.New("no such line on order")
	ErrInvalidQuantity          = errors.New("invalid return quantity")
	ErrInvalidDate              = errors.New("return date is before the order start date")
	ErrInvalidCondition         = errors.New("unknown return condition")
	ErrMissingDamageReason      = errors.New("damage description is required for damaged or lost returns")
	ErrOrderAlreadySettled      = errors.New("order is already settled or cancelled")
	ErrOutstandingItemsRemain   = errors.New("order still has unreturned items")
	ErrNonPositiveAdvanceAmount = errors.New("advance amount must be greater than zero")
	ErrInvalidTransition        = errors.New("invalid order status transition")
)
