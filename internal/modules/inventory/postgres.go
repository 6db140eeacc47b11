package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateEntry(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_entries
		  (id, product_id, location_id, quantity, reserved, min_quantity, max_quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.ProductID, e.LocationID, e.Quantity, e.Reserved, e.MinQuantity, e.MaxQuantity)
	return err
}

func (r *postgresRepo) GetEntryByID(ctx context.Context, id string) (*Entry, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scanEntry(r.db.QueryRowContext(ctx, `
		SELECT id, product_id, location_id, quantity, reserved, min_quantity, max_quantity, created_at, updated_at
		FROM inventory_entries WHERE id=$1`, uid))
}

func (r *postgresRepo) GetEntryByProductLocation(ctx context.Context, productID, locationID string) (*Entry, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	lid, err := uuid.Parse(locationID)
	if err != nil {
		return nil, err
	}
	return r.scanEntry(r.db.QueryRowContext(ctx, `
		SELECT id, product_id, location_id, quantity, reserved, min_quantity, max_quantity, created_at, updated_at
		FROM inventory_entries WHERE product_id=$1 AND location_id=$2`, pid, lid))
}

func (r *postgresRepo) ListEntriesByProduct(ctx context.Context, productID string) ([]*Entry, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, location_id, quantity, reserved, min_quantity, max_quantity, created_at, updated_at
		FROM inventory_entries WHERE product_id=$1 ORDER BY created_at ASC`, pid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.ProductID, &e.LocationID, &e.Quantity, &e.Reserved,
			&e.MinQuantity, &e.MaxQuantity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresRepo) PeakLoad(ctx context.Context, entryID uuid.UUID, start, end time.Time) (int, error) {
	var peak int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(reserved), 0)
		FROM reservation_days
		WHERE entry_id=$1 AND day BETWEEN $2 AND $3`,
		entryID, start, end).Scan(&peak)
	return peak, err
}

// Reserve locks the entry row to serialise admissions for one
// (product, location), re-checks every day bucket, then bumps the buckets
// and the peak counter in the same transaction.
func (r *postgresRepo) Reserve(ctx context.Context, entryID uuid.UUID, qty int, start, end time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var quantity int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM inventory_entries WHERE id=$1 FOR UPDATE`, entryID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var peak int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(reserved), 0)
		FROM reservation_days
		WHERE entry_id=$1 AND day BETWEEN $2 AND $3`,
		entryID, start, end).Scan(&peak)
	if err != nil {
		return err
	}
	if peak+qty > quantity {
		return ErrInsufficientStock
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reservation_days (entry_id, day, reserved)
		SELECT $1, d::date, $4
		FROM generate_series($2::date, $3::date, interval '1 day') AS d
		ON CONFLICT (entry_id, day)
		DO UPDATE SET reserved = reservation_days.reserved + EXCLUDED.reserved`,
		entryID, start, end, qty)
	if err != nil {
		return fmt.Errorf("bump day buckets: %w", err)
	}

	if err := r.syncPeak(ctx, tx, entryID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) Release(ctx context.Context, entryID uuid.UUID, qty int, start, end time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`SELECT 1 FROM inventory_entries WHERE id=$1 FOR UPDATE`, entryID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE reservation_days SET reserved = reserved - $4
		WHERE entry_id=$1 AND day BETWEEN $2 AND $3`,
		entryID, start, end, qty)
	if err != nil {
		return fmt.Errorf("drain day buckets: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM reservation_days WHERE entry_id=$1 AND reserved <= 0`, entryID)
	if err != nil {
		return err
	}

	if err := r.syncPeak(ctx, tx, entryID); err != nil {
		return err
	}
	return tx.Commit()
}

// syncPeak recomputes the entry's reserved counter as the calendar's peak
// day-load. Runs inside the caller's transaction while the row is locked.
func (r *postgresRepo) syncPeak(ctx context.Context, tx *sql.Tx, entryID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE inventory_entries
		SET reserved = (SELECT COALESCE(MAX(reserved), 0) FROM reservation_days WHERE entry_id=$1),
		    updated_at = NOW()
		WHERE id=$1`, entryID)
	return err
}

func (r *postgresRepo) scanEntry(row *sql.Row) (*Entry, error) {
	e := &Entry{}
	err := row.Scan(&e.ID, &e.ProductID, &e.LocationID, &e.Quantity, &e.Reserved,
		&e.MinQuantity, &e.MaxQuantity, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
