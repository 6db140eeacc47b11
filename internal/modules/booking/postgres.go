package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const bookingColumns = `id, booking_number, product_id, location_id, entry_id, customer_id,
	quantity, start_date, end_date, status,
	days, base_amount, deposit_amount, tax_amount, total_amount,
	currency, payment_method, delivery, notes, created_at, updated_at`

func (r *postgresRepo) CreateBooking(ctx context.Context, b *Booking) error {
	delivery, err := json.Marshal(b.Delivery)
	if err != nil {
		return fmt.Errorf("marshal delivery: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bookings
		  (id, booking_number, product_id, location_id, entry_id, customer_id,
		   quantity, start_date, end_date, status,
		   days, base_amount, deposit_amount, tax_amount, total_amount,
		   currency, payment_method, delivery, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		b.ID, b.BookingNumber, b.ProductID, b.LocationID, b.EntryID, b.CustomerID,
		b.Quantity, b.StartDate, b.EndDate, b.Status,
		b.Pricing.Days, b.Pricing.BaseAmount, b.Pricing.DepositAmount,
		b.Pricing.TaxAmount, b.Pricing.TotalAmount,
		b.Currency, b.PaymentMethod, delivery, b.Notes)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	return r.scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
}

func (r *postgresRepo) GetBookingByNumber(ctx context.Context, number string) (*Booking, error) {
	return r.scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_number=$1`, number))
}

func (r *postgresRepo) ListBookingsByCustomer(ctx context.Context, customerID string) ([]*Booking, error) {
	return r.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
}

func (r *postgresRepo) ListBookingsByProduct(ctx context.Context, productID string, status string) ([]*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE product_id=$1`
	args := []interface{}{productID}
	if status != "" {
		query += ` AND status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryBookings(ctx, query, args...)
}

func (r *postgresRepo) UpdateStatusCAS(ctx context.Context, id string, from, to Status) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`,
		to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *postgresRepo) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]*Booking, error) {
	return r.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE status=$1 AND created_at < $2 ORDER BY created_at ASC`,
		StatusPending, cutoff)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) scanBooking(row *sql.Row) (*Booking, error) {
	b := &Booking{}
	var delivery []byte
	err := row.Scan(
		&b.ID, &b.BookingNumber, &b.ProductID, &b.LocationID, &b.EntryID, &b.CustomerID,
		&b.Quantity, &b.StartDate, &b.EndDate, &b.Status,
		&b.Pricing.Days, &b.Pricing.BaseAmount, &b.Pricing.DepositAmount,
		&b.Pricing.TaxAmount, &b.Pricing.TotalAmount,
		&b.Currency, &b.PaymentMethod, &delivery, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(delivery, &b.Delivery); err != nil {
		return nil, fmt.Errorf("unmarshal delivery: %w", err)
	}
	return b, nil
}

func (r *postgresRepo) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var bookings []*Booking
	for rows.Next() {
		b := &Booking{}
		var delivery []byte
		if err := rows.Scan(
			&b.ID, &b.BookingNumber, &b.ProductID, &b.LocationID, &b.EntryID, &b.CustomerID,
			&b.Quantity, &b.StartDate, &b.EndDate, &b.Status,
			&b.Pricing.Days, &b.Pricing.BaseAmount, &b.Pricing.DepositAmount,
			&b.Pricing.TaxAmount, &b.Pricing.TotalAmount,
			&b.Currency, &b.PaymentMethod, &delivery, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(delivery, &b.Delivery); err != nil {
			return nil, fmt.Errorf("unmarshal delivery: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
