package postgres

import (
	"database/sql"

	"siteledger-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.OrderRepository
	repository.AdvanceRepository
	repository.SettlementRepository
	repository.VendorRepository
	repository.SiteRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		OrderRepository:      NewOrderRepository(db),
		AdvanceRepository:    NewAdvanceRepository(db),
		SettlementRepository: NewSettlementRepository(db),
		VendorRepository:     NewVendorRepository(db),
		SiteRepository:       NewSiteRepository(db),
	}
}
