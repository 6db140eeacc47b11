package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateTransaction(ctx context.Context, tx *Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_transactions
		  (id, booking_id, provider, provider_ref, status, amount, currency, phone_number, last_error)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		tx.ID, tx.BookingID, tx.Provider, tx.ProviderRef, tx.Status,
		tx.Amount, tx.Currency, tx.PhoneNumber, tx.LastError)
	return err
}

func (r *postgresRepo) GetTransactionByID(ctx context.Context, id string) (*Transaction, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	tx := &Transaction{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, booking_id, provider, provider_ref, status, amount, currency, phone_number, last_error, created_at, updated_at
		FROM payment_transactions WHERE id=$1`, uid).
		Scan(&tx.ID, &tx.BookingID, &tx.Provider, &tx.ProviderRef, &tx.Status,
			&tx.Amount, &tx.Currency, &tx.PhoneNumber, &tx.LastError, &tx.CreatedAt, &tx.UpdatedAt)
	return tx, err
}

func (r *postgresRepo) ListTransactionsByBooking(ctx context.Context, bookingID string) ([]*Transaction, error) {
	uid, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, booking_id, provider, provider_ref, status, amount, currency, phone_number, last_error, created_at, updated_at
		FROM payment_transactions WHERE booking_id=$1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		if err := rows.Scan(&tx.ID, &tx.BookingID, &tx.Provider, &tx.ProviderRef, &tx.Status,
			&tx.Amount, &tx.Currency, &tx.PhoneNumber, &tx.LastError, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status TxStatus, providerRef, lastError string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status=$1, provider_ref=COALESCE(NULLIF($2,''), provider_ref), last_error=$3, updated_at=$4
		WHERE id=$5`,
		status, providerRef, lastError, time.Now(), uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}
