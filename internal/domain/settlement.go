package domain

import "time"

// LineAccrual is the per-line output of the accrual calculator.
type LineAccrual struct {
	LineID              int32  `json:"line_id"`
	RentalItemID        int32  `json:"rental_item_id"`
	ItemName            string `json:"item_name"`
	Quantity            int32  `json:"quantity"`
	QuantityReturned    int32  `json:"quantity_returned"`
	QuantityOutstanding int32  `json:"quantity_outstanding"`
	// DaysRented is the accrual window of the still-outstanding
	// cohort, for display; zero once the line is fully returned.
	DaysRented    int32 `json:"days_rented"`
	SubtotalCents int64 `json:"subtotal_cents"`
}

// CostBreakdown is the full cost picture of an order as of a date.
// It is a pure function of the order snapshot; storage may cache it
// but the engine recomputes it on every read.
type CostBreakdown struct {
	AsOf                       time.Time     `json:"as_of"`
	Lines                      []LineAccrual `json:"lines"`
	ItemsSubtotalCents         int64         `json:"items_subtotal_cents"`
	DiscountPercent            float64       `json:"discount_percent"`
	DiscountCents              int64         `json:"discount_cents"`
	SubtotalAfterDiscountCents int64         `json:"subtotal_after_discount_cents"`
	TransportCents             int64         `json:"transport_cents"`
	DamagesCents               int64         `json:"damages_cents"`
	GrossTotalCents            int64         `json:"gross_total_cents"`
	DaysElapsed                int32         `json:"days_elapsed"`
	IsOverdue                  bool          `json:"is_overdue"`
	DaysOverdue                int32         `json:"days_overdue"`
	AdvancesPaidCents          int64         `json:"advances_paid_cents"`
	// BalanceDueCents is gross total minus advances: positive means
	// the site still owes, negative means the vendor owes a refund.
	BalanceDueCents int64 `json:"balance_due_cents"`
}

// SettlementRecord closes an order. Created exactly once per order;
// its breakdown is a snapshot taken at settlement so the amount stays
// auditable regardless of anything that happens later.
type SettlementRecord struct {
	ID             int32         `json:"id"`
	OrderID        int32         `json:"order_id"`
	SettlementDate time.Time     `json:"settlement_date"`
	Breakdown      CostBreakdown `json:"breakdown"`
	// NegotiatedFinalCents overrides the computed gross total when the
	// site and vendor agree a different closing figure; nil means the
	// computed total stands.
	NegotiatedFinalCents *int64 `json:"negotiated_final_cents,omitempty"`
	FinalAmountCents     int64  `json:"final_amount_cents"`
	AdvancesPaidCents    int64  `json:"advances_paid_cents"`
	// BalanceCents is signed: positive = site owes the vendor,
	// zero = fully covered by advances, negative = refund due.
	BalanceCents int64       `json:"balance_cents"`
	PaymentMode  PaymentMode `json:"payment_mode,omitempty"`
	PaymentRef   string      `json:"payment_ref,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedOn    time.Time   `json:"created_on"`
}
