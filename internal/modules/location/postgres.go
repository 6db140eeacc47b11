package location

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateLocation(ctx context.Context, l *Location) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (id, name, type, address, city, country, phone, opens_at, closes_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		l.ID, l.Name, l.Type, l.Address, l.City, l.Country, l.Phone, l.OpensAt, l.ClosesAt, l.IsActive)
	return err
}

func (r *postgresRepo) GetLocationByID(ctx context.Context, id string) (*Location, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	l := &Location{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, type, address, city, country, phone, opens_at, closes_at, is_active, created_at, updated_at
		FROM locations WHERE id=$1`, uid).
		Scan(&l.ID, &l.Name, &l.Type, &l.Address, &l.City, &l.Country, &l.Phone,
			&l.OpensAt, &l.ClosesAt, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *postgresRepo) ListLocations(ctx context.Context) ([]*Location, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, address, city, country, phone, opens_at, closes_at, is_active, created_at, updated_at
		FROM locations WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var locations []*Location
	for rows.Next() {
		l := &Location{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Type, &l.Address, &l.City, &l.Country, &l.Phone,
			&l.OpensAt, &l.ClosesAt, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
