package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeCheque       PaymentMode = "CHEQUE"
)

// AdvancePayment is a payment made against an order before settlement.
// The advance ledger is append-only; the total advance paid is always
// the sum over these events, never a stored counter.
type AdvancePayment struct {
	ID             uuid.UUID   `json:"id"`
	OrderID        int32       `json:"order_id"`
	AdvanceDate    time.Time   `json:"advance_date"`
	AmountCents    int64       `json:"amount_cents"`
	PaymentMode    PaymentMode `json:"payment_mode"`
	PaymentChannel string      `json:"payment_channel,omitempty"`
	PaidBy         string      `json:"paid_by,omitempty"`
	// ProofRef is an opaque reference to an uploaded proof of payment;
	// the upload itself is handled outside this system.
	ProofRef  string    `json:"proof_ref,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
