package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/engine"
	"siteledger-backend/internal/logger"
	"siteledger-backend/internal/repository"
	"siteledger-backend/internal/utils"
)

var (
	ErrNoLines         = errors.New("order must have at least one line")
	ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")
)

type rentalOrderService struct {
	orders      repository.OrderRepository
	advances    repository.AdvanceRepository
	settlements repository.SettlementRepository
	vendors     repository.VendorRepository
	sites       repository.SiteRepository
	email       EmailService
}

func NewRentalOrderService(
	orders repository.OrderRepository,
	advances repository.AdvanceRepository,
	settlements repository.SettlementRepository,
	vendors repository.VendorRepository,
	sites repository.SiteRepository,
	email EmailService,
) RentalOrderService {
	return &rentalOrderService{
		orders:      orders,
		advances:    advances,
		settlements: settlements,
		vendors:     vendors,
		sites:       sites,
		email:       email,
	}
}

func (s *rentalOrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.RentalOrder, error) {
	if len(in.Lines) == 0 {
		return nil, ErrNoLines
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	startDate, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", engine.ErrInvalidDate, in.StartDate)
	}
	var expected *time.Time
	if in.ExpectedReturnDate != "" {
		d, err := utils.ParseDate(in.ExpectedReturnDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expected_return_date %q", engine.ErrInvalidDate, in.ExpectedReturnDate)
		}
		if d.Before(startDate) {
			return nil, fmt.Errorf("%w: expected_return_date before start_date", engine.ErrInvalidDate)
		}
		expected = &d
	}
	if _, err := s.vendors.GetByID(ctx, in.VendorID); err != nil {
		return nil, fmt.Errorf("vendor %d: %w", in.VendorID, err)
	}
	if _, err := s.sites.GetByID(ctx, in.SiteID); err != nil {
		return nil, fmt.Errorf("site %d: %w", in.SiteID, err)
	}

	order := &domain.RentalOrder{
		SiteID:                in.SiteID,
		VendorID:              in.VendorID,
		StartDate:             startDate,
		ExpectedReturnDate:    expected,
		Status:                domain.OrderStatusDraft,
		DiscountPercent:       in.DiscountPercent,
		OutwardTransportCents: in.OutwardTransportCents,
		OutwardLoadingCents:   in.OutwardLoadingCents,
		OutwardUnloadingCents: in.OutwardUnloadingCents,
		ReturnTransportCents:  in.ReturnTransportCents,
		ReturnLoadingCents:    in.ReturnLoadingCents,
		ReturnUnloadingCents:  in.ReturnUnloadingCents,
		Notes:                 in.Notes,
	}
	for i, ln := range in.Lines {
		if ln.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d quantity %d", engine.ErrInvalidQuantity, i, ln.Quantity)
		}
		if ln.DailyRateCents < 0 {
			return nil, fmt.Errorf("line %d: daily rate must not be negative", i)
		}
		defaultRate := ln.DefaultDailyRateCents
		if defaultRate == 0 {
			defaultRate = ln.DailyRateCents
		}
		order.Lines = append(order.Lines, domain.RentalOrderLine{
			RentalItemID:          ln.RentalItemID,
			ItemName:              ln.ItemName,
			Quantity:              ln.Quantity,
			DailyRateCents:        ln.DailyRateCents,
			DefaultDailyRateCents: defaultRate,
			Position:              int32(i),
		})
	}

	seq, err := s.orders.NextOrderSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocating order number: %w", err)
	}
	order.OrderNo = fmt.Sprintf("RO-%s-%04d", time.Now().UTC().Format("20060102"), seq)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	logger.Info("created rental order", "order_no", order.OrderNo, "order_id", order.ID, "lines", len(order.Lines))
	return order, nil
}

func (s *rentalOrderService) GetOrder(ctx context.Context, orderID int32, asOf time.Time) (*domain.RentalOrder, *domain.CostBreakdown, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	bd := engine.ComputeBreakdown(order, asOf)
	return order, &bd, nil
}

func (s *rentalOrderService) ListOrders(ctx context.Context, siteID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.orders.List(ctx, siteID, status, page, pageSize)
}

func (s *rentalOrderService) ActivateOrder(ctx context.Context, orderID int32) (*domain.RentalOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := engine.Activate(order); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	logger.Info("activated rental order", "order_no", order.OrderNo)
	return order, nil
}

func (s *rentalOrderService) CancelOrder(ctx context.Context, orderID int32) (*domain.RentalOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := engine.Cancel(order); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	logger.Info("cancelled rental order", "order_no", order.OrderNo)
	return order, nil
}

func (s *rentalOrderService) RecordReturn(ctx context.Context, orderID int32, in ReturnInput) (*domain.RentalOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	returnDate, err := utils.ParseDate(in.ReturnDate)
	if err != nil {
		return nil, fmt.Errorf("%w: return_date %q", engine.ErrInvalidDate, in.ReturnDate)
	}
	eventID := uuid.New()
	if in.EventID != "" {
		eventID, err = uuid.Parse(in.EventID)
		if err != nil {
			return nil, fmt.Errorf("invalid event_id %q: %v", in.EventID, err)
		}
	}
	ev := domain.ReturnEvent{
		ID:                eventID,
		LineID:            in.LineID,
		ReturnDate:        returnDate,
		Quantity:          in.Quantity,
		Condition:         domain.ReturnCondition(in.Condition),
		DamageDescription: in.DamageDescription,
		DamageCostCents:   in.DamageCostCents,
		Notes:             in.Notes,
	}
	if err := engine.ApplyReturn(order, ev); err != nil {
		return nil, err
	}
	line := order.Line(in.LineID)
	if err := s.orders.AppendReturn(ctx, order, &line.Returns[len(line.Returns)-1]); err != nil {
		return nil, err
	}
	logger.Info("recorded return", "order_no", order.OrderNo, "line_id", in.LineID,
		"quantity", in.Quantity, "condition", in.Condition)
	return order, nil
}

func (s *rentalOrderService) RecordAdvance(ctx context.Context, orderID int32, in AdvanceInput) (*domain.RentalOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	advanceDate, err := utils.ParseDate(in.AdvanceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: advance_date %q", engine.ErrInvalidDate, in.AdvanceDate)
	}
	adv := domain.AdvancePayment{
		ID:             uuid.New(),
		AdvanceDate:    advanceDate,
		AmountCents:    in.AmountCents,
		PaymentMode:    domain.PaymentMode(in.PaymentMode),
		PaymentChannel: in.PaymentChannel,
		PaidBy:         in.PaidBy,
		ProofRef:       in.ProofRef,
		Notes:          in.Notes,
	}
	if err := engine.RecordAdvance(order, adv); err != nil {
		return nil, err
	}
	if err := s.advances.Append(ctx, order, &order.Advances[len(order.Advances)-1]); err != nil {
		return nil, err
	}
	logger.Info("recorded advance", "order_no", order.OrderNo,
		"amount", utils.FormatCents(in.AmountCents), "mode", in.PaymentMode)
	return order, nil
}

func (s *rentalOrderService) SettleOrder(ctx context.Context, orderID int32, in SettlementInput) (*domain.SettlementRecord, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	settlementDate, err := utils.ParseDate(in.SettlementDate)
	if err != nil {
		return nil, fmt.Errorf("%w: settlement_date %q", engine.ErrInvalidDate, in.SettlementDate)
	}
	rec, err := engine.Settle(order, settlementDate, engine.SettleInput{
		NegotiatedFinalCents: in.NegotiatedFinalCents,
		PaymentMode:          domain.PaymentMode(in.PaymentMode),
		PaymentRef:           in.PaymentRef,
		Notes:                in.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.settlements.Create(ctx, order, rec); err != nil {
		return nil, err
	}
	logger.Info("settled rental order", "order_no", order.OrderNo,
		"final_amount", utils.FormatCents(rec.FinalAmountCents),
		"balance", utils.FormatCents(rec.BalanceCents))

	if vendor, verr := s.vendors.GetByID(ctx, order.VendorID); verr == nil && vendor.Email != "" {
		if merr := s.email.SendSettlementReceipt(ctx, vendor.Email, vendor.Name, order.OrderNo, rec); merr != nil {
			logger.Error("sending settlement receipt", "order_no", order.OrderNo, "error", merr)
		}
	}
	return rec, nil
}

func (s *rentalOrderService) GetSettlement(ctx context.Context, orderID int32) (*domain.SettlementRecord, error) {
	return s.settlements.GetByOrder(ctx, orderID)
}
