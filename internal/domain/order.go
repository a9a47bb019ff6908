package domain

import "time"

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusSettled   OrderStatus = "SETTLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusSettled || s == OrderStatusCancelled
}

// CanTransitionTo encodes the order state machine:
//
//	DRAFT  -> ACTIVE | CANCELLED
//	ACTIVE -> SETTLED | CANCELLED
//
// Overdue is never a status; it is derived from dates and outstanding
// quantities at read time.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusActive || target == OrderStatusCancelled
	case OrderStatusActive:
		return target == OrderStatusSettled || target == OrderStatusCancelled
	default:
		return false
	}
}

// RentalOrder is a full order snapshot: the order row plus its lines,
// each line's return history, and the advances paid against it. The
// storage layer loads and persists it as a unit; all totals are
// derived from this state, never trusted from storage.
type RentalOrder struct {
	ID                 int32       `json:"id"`
	OrderNo            string      `json:"order_no"`
	SiteID             int32       `json:"site_id"`
	VendorID           int32       `json:"vendor_id"`
	StartDate          time.Time   `json:"start_date"`
	ExpectedReturnDate *time.Time  `json:"expected_return_date,omitempty"`
	SettlementDate     *time.Time  `json:"settlement_date,omitempty"`
	Status             OrderStatus `json:"status"`

	// Commercial terms agreed with the vendor at order time.
	DiscountPercent        float64 `json:"discount_percent"`
	OutwardTransportCents  int64   `json:"outward_transport_cents"`
	OutwardLoadingCents    int64   `json:"outward_loading_cents"`
	OutwardUnloadingCents  int64   `json:"outward_unloading_cents"`
	ReturnTransportCents   int64   `json:"return_transport_cents"`
	ReturnLoadingCents     int64   `json:"return_loading_cents"`
	ReturnUnloadingCents   int64   `json:"return_unloading_cents"`

	Lines    []RentalOrderLine `json:"lines"`
	Advances []AdvancePayment  `json:"advances"`

	Notes string `json:"notes"`
	// Version guards against concurrent mutation: every write is
	// predicated on the version it read.
	Version   int32     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Line returns the line with the given id, or nil.
func (o *RentalOrder) Line(lineID int32) *RentalOrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// HasOutstanding reports whether any line still has unreturned units.
func (o *RentalOrder) HasOutstanding() bool {
	for i := range o.Lines {
		if o.Lines[i].QuantityOutstanding() > 0 {
			return true
		}
	}
	return false
}

// TransportTotalCents sums the outward and return transport, loading
// and unloading charges.
func (o *RentalOrder) TransportTotalCents() int64 {
	return o.OutwardTransportCents + o.OutwardLoadingCents + o.OutwardUnloadingCents +
		o.ReturnTransportCents + o.ReturnLoadingCents + o.ReturnUnloadingCents
}

// RentalOrderLine is one rented item on an order. Lines are created
// with the order; once a return exists against a line its quantity is
// frozen and the line can no longer be deleted.
type RentalOrderLine struct {
	ID               int32  `json:"id"`
	OrderID          int32  `json:"order_id"`
	RentalItemID     int32  `json:"rental_item_id"`
	ItemName         string `json:"item_name"`
	Quantity         int32  `json:"quantity"`
	QuantityReturned int32  `json:"quantity_returned"`
	// DailyRateCents is the negotiated rate all accrual uses.
	// DefaultDailyRateCents is the catalog rate, kept for audit only.
	DailyRateCents        int64 `json:"daily_rate_cents"`
	DefaultDailyRateCents int64 `json:"default_daily_rate_cents"`
	// Position preserves insertion order for display; cost does not
	// depend on it.
	Position int32         `json:"position"`
	Returns  []ReturnEvent `json:"returns"`
}

// QuantityOutstanding is always Quantity - QuantityReturned, >= 0.
func (l *RentalOrderLine) QuantityOutstanding() int32 {
	return l.Quantity - l.QuantityReturned
}
