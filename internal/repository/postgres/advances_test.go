package postgres

import (
	"context"
	"testing"
	"time"

	"siteledger-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAdvanceRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	order := &domain.RentalOrder{ID: 1, Version: 2}
	adv := &domain.AdvancePayment{
		ID:          uuid.New(),
		OrderID:     1,
		AdvanceDate: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		AmountCents: 200000,
		PaymentMode: domain.PaymentModeBankTransfer,
		PaidBy:      "site office",
		CreatedOn:   time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rental_orders SET version").
		WithArgs(order.ID, int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO advance_payments").
		WithArgs(adv.ID, adv.OrderID, adv.AdvanceDate, adv.AmountCents, adv.PaymentMode,
			adv.PaymentChannel, adv.PaidBy, adv.ProofRef, adv.Notes, adv.CreatedOn).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Append(ctx, order, adv))
	assert.Equal(t, int32(3), order.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvanceRepository_TotalByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount_cents\\), 0\\) FROM advance_payments").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(250000))

	total, err := repo.TotalByOrder(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(250000), total)
}
