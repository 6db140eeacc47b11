package payment

import "context"

// Repository defines payment transaction storage.
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*Transaction, error)
	ListTransactionsByBooking(ctx context.Context, bookingID string) ([]*Transaction, error)
	UpdateStatus(ctx context.Context, id string, status TxStatus, providerRef, lastError string) error
}
