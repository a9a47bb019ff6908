package postgres

import (
	"context"
	"database/sql"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/repository"
)

type vendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) repository.VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	query := `INSERT INTO vendors (name, email, phone, address, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, vendor.Name, vendor.Email, vendor.Phone, vendor.Address).
		Scan(&vendor.ID, &vendor.CreatedOn)
}

func (r *vendorRepository) GetByID(ctx context.Context, id int32) (*domain.Vendor, error) {
	vendor := &domain.Vendor{}
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), created_on
	          FROM vendors WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&vendor.ID, &vendor.Name, &vendor.Email, &vendor.Phone, &vendor.Address, &vendor.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), created_on
	          FROM vendors ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CreatedOn); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}
