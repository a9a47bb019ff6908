package repository

import (
	"context"
	"errors"

	"siteledger-backend/internal/domain"
)

// Storage-level errors. ErrVersionConflict signals a lost optimistic
// concurrency race: the order changed since the caller read it, and
// the caller should reload and retry.
var (
	ErrNotFound        = errors.New("record not found")
	ErrVersionConflict = errors.New("order was modified concurrently")
)

// OrderRepository persists rental orders. GetByID loads the complete
// snapshot the engine operates on: the order row, its lines, each
// line's return history, and its advances. Mutating methods take the
// snapshot the caller read and predicate every write on its Version,
// which is how at-most-one-in-flight mutation per order is enforced.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.RentalOrder) error
	GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error)
	UpdateStatus(ctx context.Context, order *domain.RentalOrder) error
	AppendReturn(ctx context.Context, order *domain.RentalOrder, ev *domain.ReturnEvent) error
	List(ctx context.Context, siteID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListActiveOverdueCandidates(ctx context.Context, asOf string) ([]int32, error)
	NextOrderSequence(ctx context.Context) (int64, error)
}

// AdvanceRepository is the append-only advance ledger.
type AdvanceRepository interface {
	Append(ctx context.Context, order *domain.RentalOrder, adv *domain.AdvancePayment) error
	ListByOrder(ctx context.Context, orderID int32) ([]domain.AdvancePayment, error)
	TotalByOrder(ctx context.Context, orderID int32) (int64, error)
}

// SettlementRepository persists settlement records. Create writes the
// record and flips the order to SETTLED in one transaction.
type SettlementRepository interface {
	Create(ctx context.Context, order *domain.RentalOrder, rec *domain.SettlementRecord) error
	GetByOrder(ctx context.Context, orderID int32) (*domain.SettlementRecord, error)
}

type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id int32) (*domain.Vendor, error)
	List(ctx context.Context) ([]domain.Vendor, error)
}

type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) error
	GetByID(ctx context.Context, id int32) (*domain.Site, error)
	List(ctx context.Context) ([]domain.Site, error)
}
