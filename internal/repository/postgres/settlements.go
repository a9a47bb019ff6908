package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/repository"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

// Create persists the settlement record and transitions the order to
// SETTLED in one transaction, predicated on the order version. The
// breakdown snapshot is stored as JSONB so the settled amount stays
// reconstructable.
func (r *settlementRepository) Create(ctx context.Context, order *domain.RentalOrder, rec *domain.SettlementRecord) error {
	breakdown, err := json.Marshal(rec.Breakdown)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := bumpVersion(ctx, tx, order); err != nil {
		return err
	}

	query := `INSERT INTO settlements
	          (order_id, settlement_date, breakdown, negotiated_final_cents, final_amount_cents,
	           advances_paid_cents, balance_cents, payment_mode, payment_ref, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		rec.OrderID, rec.SettlementDate, breakdown, rec.NegotiatedFinalCents,
		rec.FinalAmountCents, rec.AdvancesPaidCents, rec.BalanceCents,
		rec.PaymentMode, rec.PaymentRef, rec.Notes, rec.CreatedOn,
	).Scan(&rec.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE rental_orders SET status = $1, settlement_date = $2, updated_on = NOW() WHERE id = $3`,
		domain.OrderStatusSettled, rec.SettlementDate, order.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *settlementRepository) GetByOrder(ctx context.Context, orderID int32) (*domain.SettlementRecord, error) {
	rec := &domain.SettlementRecord{}
	var breakdown []byte
	var negotiated sql.NullInt64
	query := `SELECT id, order_id, settlement_date, breakdown, negotiated_final_cents,
	                 final_amount_cents, advances_paid_cents, balance_cents,
	                 COALESCE(payment_mode, ''), COALESCE(payment_ref, ''), COALESCE(notes, ''), created_on
	          FROM settlements WHERE order_id = $1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&rec.ID, &rec.OrderID, &rec.SettlementDate, &breakdown, &negotiated,
		&rec.FinalAmountCents, &rec.AdvancesPaidCents, &rec.BalanceCents,
		&rec.PaymentMode, &rec.PaymentRef, &rec.Notes, &rec.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if negotiated.Valid {
		v := negotiated.Int64
		rec.NegotiatedFinalCents = &v
	}
	if err := json.Unmarshal(breakdown, &rec.Breakdown); err != nil {
		return nil, err
	}
	return rec, nil
}
