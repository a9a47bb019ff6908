package postgres

import (
	"context"
	"database/sql"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/repository"
)

type siteRepository struct {
	db *sql.DB
}

func NewSiteRepository(db *sql.DB) repository.SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(ctx context.Context, site *domain.Site) error {
	query := `INSERT INTO sites (name, location, created_on) VALUES ($1, $2, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, site.Name, site.Location).Scan(&site.ID, &site.CreatedOn)
}

func (r *siteRepository) GetByID(ctx context.Context, id int32) (*domain.Site, error) {
	site := &domain.Site{}
	query := `SELECT id, name, COALESCE(location, ''), created_on FROM sites WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&site.ID, &site.Name, &site.Location, &site.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

func (r *siteRepository) List(ctx context.Context) ([]domain.Site, error) {
	query := `SELECT id, name, COALESCE(location, ''), created_on FROM sites ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []domain.Site
	for rows.Next() {
		var s domain.Site
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedOn); err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}
