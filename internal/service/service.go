package service

import (
	"context"
	"time"

	"siteledger-backend/internal/domain"
)

// LineInput describes one rented item on a new order.
type LineInput struct {
	RentalItemID          int32  `json:"rental_item_id"`
	ItemName              string `json:"item_name"`
	Quantity              int32  `json:"quantity"`
	DailyRateCents        int64  `json:"daily_rate_cents"`
	DefaultDailyRateCents int64  `json:"default_daily_rate_cents"`
}

type CreateOrderInput struct {
	SiteID                int32       `json:"site_id"`
	VendorID              int32       `json:"vendor_id"`
	StartDate             string      `json:"start_date"`
	ExpectedReturnDate    string      `json:"expected_return_date,omitempty"`
	DiscountPercent       float64     `json:"discount_percent"`
	OutwardTransportCents int64       `json:"outward_transport_cents"`
	OutwardLoadingCents   int64       `json:"outward_loading_cents"`
	OutwardUnloadingCents int64       `json:"outward_unloading_cents"`
	ReturnTransportCents  int64       `json:"return_transport_cents"`
	ReturnLoadingCents    int64       `json:"return_loading_cents"`
	ReturnUnloadingCents  int64       `json:"return_unloading_cents"`
	Notes                 string      `json:"notes,omitempty"`
	Lines                 []LineInput `json:"lines"`
}

type ReturnInput struct {
	// EventID lets callers supply their own id so resubmissions can be
	// de-duplicated upstream; blank means the service assigns one.
	EventID           string `json:"event_id,omitempty"`
	LineID            int32  `json:"line_id"`
	ReturnDate        string `json:"return_date"`
	Quantity          int32  `json:"quantity"`
	Condition         string `json:"condition"`
	DamageDescription string `json:"damage_description,omitempty"`
	DamageCostCents   int64  `json:"damage_cost_cents"`
	Notes             string `json:"notes,omitempty"`
}

type AdvanceInput struct {
	AdvanceDate    string `json:"advance_date"`
	AmountCents    int64  `json:"amount_cents"`
	PaymentMode    string `json:"payment_mode"`
	PaymentChannel string `json:"payment_channel,omitempty"`
	PaidBy         string `json:"paid_by,omitempty"`
	ProofRef       string `json:"proof_ref,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type SettlementInput struct {
	SettlementDate       string `json:"settlement_date"`
	NegotiatedFinalCents *int64 `json:"negotiated_final_cents,omitempty"`
	PaymentMode          string `json:"payment_mode,omitempty"`
	PaymentRef           string `json:"payment_ref,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

type RentalOrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.RentalOrder, error)
	GetOrder(ctx context.Context, orderID int32, asOf time.Time) (*domain.RentalOrder, *domain.CostBreakdown, error)
	ListOrders(ctx context.Context, siteID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ActivateOrder(ctx context.Context, orderID int32) (*domain.RentalOrder, error)
	CancelOrder(ctx context.Context, orderID int32) (*domain.RentalOrder, error)
	RecordReturn(ctx context.Context, orderID int32, in ReturnInput) (*domain.RentalOrder, error)
	RecordAdvance(ctx context.Context, orderID int32, in AdvanceInput) (*domain.RentalOrder, error)
	SettleOrder(ctx context.Context, orderID int32, in SettlementInput) (*domain.SettlementRecord, error)
	GetSettlement(ctx context.Context, orderID int32) (*domain.SettlementRecord, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, vendorName, orderNo string, daysOverdue int32, balanceDueCents int64) error
	SendSettlementReceipt(ctx context.Context, email, vendorName, orderNo string, rec *domain.SettlementRecord) error
}
