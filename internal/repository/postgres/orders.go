package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.RentalOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	order.Version = 1
	query := `INSERT INTO rental_orders
	          (order_no, site_id, vendor_id, start_date, expected_return_date, status,
	           discount_percent, outward_transport_cents, outward_loading_cents, outward_unloading_cents,
	           return_transport_cents, return_loading_cents, return_unloading_cents, notes, version,
	           created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query,
		order.OrderNo, order.SiteID, order.VendorID, order.StartDate, order.ExpectedReturnDate,
		order.Status, order.DiscountPercent,
		order.OutwardTransportCents, order.OutwardLoadingCents, order.OutwardUnloadingCents,
		order.ReturnTransportCents, order.ReturnLoadingCents, order.ReturnUnloadingCents,
		order.Notes, order.Version,
	).Scan(&order.ID, &order.CreatedOn, &order.UpdatedOn)
	if err != nil {
		return err
	}

	lineQuery := `INSERT INTO rental_order_lines
	              (order_id, rental_item_id, item_name, quantity, quantity_returned,
	               daily_rate_cents, default_daily_rate_cents, line_no)
	              VALUES ($1, $2, $3, $4, 0, $5, $6, $7) RETURNING id`
	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		err = tx.QueryRowContext(ctx, lineQuery,
			order.ID, line.RentalItemID, line.ItemName, line.Quantity,
			line.DailyRateCents, line.DefaultDailyRateCents, line.Position,
		).Scan(&line.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error) {
	order := &domain.RentalOrder{}
	query := `SELECT id, order_no, site_id, vendor_id, start_date, expected_return_date,
	                 settlement_date, status, discount_percent,
	                 outward_transport_cents, outward_loading_cents, outward_unloading_cents,
	                 return_transport_cents, return_loading_cents, return_unloading_cents,
	                 COALESCE(notes, ''), version, created_on, updated_on
	          FROM rental_orders WHERE id = $1`
	var expected, settled sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.OrderNo, &order.SiteID, &order.VendorID, &order.StartDate,
		&expected, &settled, &order.Status, &order.DiscountPercent,
		&order.OutwardTransportCents, &order.OutwardLoadingCents, &order.OutwardUnloadingCents,
		&order.ReturnTransportCents, &order.ReturnLoadingCents, &order.ReturnUnloadingCents,
		&order.Notes, &order.Version, &order.CreatedOn, &order.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if expected.Valid {
		order.ExpectedReturnDate = &expected.Time
	}
	if settled.Valid {
		order.SettlementDate = &settled.Time
	}

	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	if err := r.loadReturns(ctx, order); err != nil {
		return nil, err
	}
	if err := r.loadAdvances(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadLines(ctx context.Context, order *domain.RentalOrder) error {
	query := `SELECT id, order_id, rental_item_id, item_name, quantity, quantity_returned,
	                 daily_rate_cents, default_daily_rate_cents, line_no
	          FROM rental_order_lines WHERE order_id = $1 ORDER BY line_no`
	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.RentalOrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.RentalItemID, &line.ItemName,
			&line.Quantity, &line.QuantityReturned, &line.DailyRateCents,
			&line.DefaultDailyRateCents, &line.Position); err != nil {
			return err
		}
		order.Lines = append(order.Lines, line)
	}
	return rows.Err()
}

func (r *orderRepository) loadReturns(ctx context.Context, order *domain.RentalOrder) error {
	query := `SELECT id, order_id, line_id, return_date, quantity, condition,
	                 COALESCE(damage_description, ''), damage_cost_cents, COALESCE(notes, ''), created_on
	          FROM return_events WHERE order_id = $1 ORDER BY return_date, created_on`
	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ev domain.ReturnEvent
		if err := rows.Scan(&ev.ID, &ev.OrderID, &ev.LineID, &ev.ReturnDate, &ev.Quantity,
			&ev.Condition, &ev.DamageDescription, &ev.DamageCostCents, &ev.Notes, &ev.CreatedOn); err != nil {
			return err
		}
		if line := order.Line(ev.LineID); line != nil {
			line.Returns = append(line.Returns, ev)
		}
	}
	return rows.Err()
}

func (r *orderRepository) loadAdvances(ctx context.Context, order *domain.RentalOrder) error {
	query := `SELECT id, order_id, advance_date, amount_cents, payment_mode,
	                 COALESCE(payment_channel, ''), COALESCE(paid_by, ''),
	                 COALESCE(proof_ref, ''), COALESCE(notes, ''), created_on
	          FROM advance_payments WHERE order_id = $1 ORDER BY advance_date, created_on`
	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var adv domain.AdvancePayment
		if err := rows.Scan(&adv.ID, &adv.OrderID, &adv.AdvanceDate, &adv.AmountCents,
			&adv.PaymentMode, &adv.PaymentChannel, &adv.PaidBy, &adv.ProofRef,
			&adv.Notes, &adv.CreatedOn); err != nil {
			return err
		}
		order.Advances = append(order.Advances, adv)
	}
	return rows.Err()
}

// bumpVersion predicates the write on the version the caller read and
// advances it. Zero rows means either the order vanished or someone
// else won the race.
func bumpVersion(ctx context.Context, tx *sql.Tx, order *domain.RentalOrder) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE rental_orders SET version = version + 1, updated_on = NOW()
		 WHERE id = $1 AND version = $2`,
		order.ID, order.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM rental_orders WHERE id = $1)`, order.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}
	order.Version++
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, order *domain.RentalOrder) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rental_orders SET status = $1, settlement_date = $2, version = version + 1, updated_on = NOW()
		 WHERE id = $3 AND version = $4`,
		order.Status, order.SettlementDate, order.ID, order.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM rental_orders WHERE id = $1)`, order.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}
	order.Version++
	return nil
}

func (r *orderRepository) AppendReturn(ctx context.Context, order *domain.RentalOrder, ev *domain.ReturnEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := bumpVersion(ctx, tx, order); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO return_events
		 (id, order_id, line_id, return_date, quantity, condition, damage_description, damage_cost_cents, notes, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ev.ID, ev.OrderID, ev.LineID, ev.ReturnDate, ev.Quantity, ev.Condition,
		ev.DamageDescription, ev.DamageCostCents, ev.Notes, ev.CreatedOn)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE rental_order_lines SET quantity_returned = quantity_returned + $1
		 WHERE id = $2 AND order_id = $3 AND quantity_returned + $1 <= quantity`,
		ev.Quantity, ev.LineID, ev.OrderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("line %d cannot absorb return of %d", ev.LineID, ev.Quantity)
	}

	return tx.Commit()
}

func (r *orderRepository) List(ctx context.Context, siteID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, order_no, site_id, vendor_id, start_date, expected_return_date,
	                 settlement_date, status, discount_percent,
	                 outward_transport_cents, outward_loading_cents, outward_unloading_cents,
	                 return_transport_cents, return_loading_cents, return_unloading_cents,
	                 COALESCE(notes, ''), version, created_on, updated_on
	          FROM rental_orders
	          WHERE ($1 = 0 OR site_id = $1) AND ($2 = '' OR status = $2)
	          ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, siteID, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		var order domain.RentalOrder
		var expected, settled sql.NullTime
		if err := rows.Scan(
			&order.ID, &order.OrderNo, &order.SiteID, &order.VendorID, &order.StartDate,
			&expected, &settled, &order.Status, &order.DiscountPercent,
			&order.OutwardTransportCents, &order.OutwardLoadingCents, &order.OutwardUnloadingCents,
			&order.ReturnTransportCents, &order.ReturnLoadingCents, &order.ReturnUnloadingCents,
			&order.Notes, &order.Version, &order.CreatedOn, &order.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		if expected.Valid {
			order.ExpectedReturnDate = &expected.Time
		}
		if settled.Valid {
			order.SettlementDate = &settled.Time
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM rental_orders WHERE ($1 = 0 OR site_id = $1) AND ($2 = '' OR status = $2)`
	if err := r.db.QueryRowContext(ctx, countQuery, siteID, status).Scan(&count); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *orderRepository) ListActiveOverdueCandidates(ctx context.Context, asOf string) ([]int32, error) {
	query := `SELECT o.id FROM rental_orders o
	          WHERE o.status = 'ACTIVE'
	            AND o.expected_return_date IS NOT NULL
	            AND o.expected_return_date < $1
	            AND EXISTS (SELECT 1 FROM rental_order_lines l
	                        WHERE l.order_id = o.id AND l.quantity_returned < l.quantity)
	          ORDER BY o.expected_return_date`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *orderRepository) NextOrderSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx, `SELECT nextval('rental_order_no_seq')`).Scan(&seq)
	return seq, err
}
