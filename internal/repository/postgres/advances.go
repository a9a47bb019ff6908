package postgres

import (
	"context"
	"database/sql"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/repository"
)

type advanceRepository struct {
	db *sql.DB
}

func NewAdvanceRepository(db *sql.DB) repository.AdvanceRepository {
	return &advanceRepository{db: db}
}

// Append inserts the advance and bumps the order version in one
// transaction so concurrent mutations of the same order lose cleanly.
func (r *advanceRepository) Append(ctx context.Context, order *domain.RentalOrder, adv *domain.AdvancePayment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := bumpVersion(ctx, tx, order); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO advance_payments
		 (id, order_id, advance_date, amount_cents, payment_mode, payment_channel, paid_by, proof_ref, notes, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		adv.ID, adv.OrderID, adv.AdvanceDate, adv.AmountCents, adv.PaymentMode,
		adv.PaymentChannel, adv.PaidBy, adv.ProofRef, adv.Notes, adv.CreatedOn)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *advanceRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.AdvancePayment, error) {
	query := `SELECT id, order_id, advance_date, amount_cents, payment_mode,
	                 COALESCE(payment_channel, ''), COALESCE(paid_by, ''),
	                 COALESCE(proof_ref, ''), COALESCE(notes, ''), created_on
	          FROM advance_payments WHERE order_id = $1 ORDER BY advance_date, created_on`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []domain.AdvancePayment
	for rows.Next() {
		var adv domain.AdvancePayment
		if err := rows.Scan(&adv.ID, &adv.OrderID, &adv.AdvanceDate, &adv.AmountCents,
			&adv.PaymentMode, &adv.PaymentChannel, &adv.PaidBy, &adv.ProofRef,
			&adv.Notes, &adv.CreatedOn); err != nil {
			return nil, err
		}
		advances = append(advances, adv)
	}
	return advances, rows.Err()
}

func (r *advanceRepository) TotalByOrder(ctx context.Context, orderID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM advance_payments WHERE order_id = $1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&total)
	return total, err
}
