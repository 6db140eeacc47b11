package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, provider_id, name, description, category, tags,
		   daily_rate, weekly_rate, monthly_rate, deposit_amount, deposit_required,
		   currency, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.ProviderID, p.Name, p.Description, p.Category, pq.Array(p.Tags),
		p.BasePrice.Daily, p.BasePrice.Weekly, p.BasePrice.Monthly,
		p.Deposit.Amount, p.Deposit.Required, p.Currency, p.IsActive)
	return err
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p := &Product{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, provider_id, name, description, category, tags,
		       daily_rate, weekly_rate, monthly_rate, deposit_amount, deposit_required,
		       currency, is_active, created_at, updated_at
		FROM products WHERE id=$1`, uid).
		Scan(&p.ID, &p.ProviderID, &p.Name, &p.Description, &p.Category, pq.Array(&p.Tags),
			&p.BasePrice.Daily, &p.BasePrice.Weekly, &p.BasePrice.Monthly,
			&p.Deposit.Amount, &p.Deposit.Required, &p.Currency, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *postgresRepo) ListProductsByProvider(ctx context.Context, providerID string) ([]*Product, error) {
	uid, err := uuid.Parse(providerID)
	if err != nil {
		return nil, err
	}
	return r.queryProducts(ctx, `
		SELECT id, provider_id, name, description, category, tags,
		       daily_rate, weekly_rate, monthly_rate, deposit_amount, deposit_required,
		       currency, is_active, created_at, updated_at
		FROM products WHERE provider_id=$1 ORDER BY created_at DESC`, uid)
}

func (r *postgresRepo) ListProductsByCategory(ctx context.Context, category string) ([]*Product, error) {
	return r.queryProducts(ctx, `
		SELECT id, provider_id, name, description, category, tags,
		       daily_rate, weekly_rate, monthly_rate, deposit_amount, deposit_required,
		       currency, is_active, created_at, updated_at
		FROM products WHERE category=$1 AND is_active ORDER BY created_at DESC`, category)
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.ProviderID, &p.Name, &p.Description, &p.Category, pq.Array(&p.Tags),
			&p.BasePrice.Daily, &p.BasePrice.Weekly, &p.BasePrice.Monthly,
			&p.Deposit.Amount, &p.Deposit.Required, &p.Currency, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
