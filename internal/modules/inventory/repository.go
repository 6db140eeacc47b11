package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines inventory data storage.
//
// Reserve and Release are the only mutation paths for the reservation
// calendar; nothing else may touch day buckets or the reserved counter.
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntryByID(ctx context.Context, id string) (*Entry, error)
	GetEntryByProductLocation(ctx context.Context, productID, locationID string) (*Entry, error)
	ListEntriesByProduct(ctx context.Context, productID string) ([]*Entry, error)

	// PeakLoad returns the highest reserved day-load within [start, end].
	PeakLoad(ctx context.Context, entryID uuid.UUID, start, end time.Time) (int, error)

	// Reserve adds qty to every day bucket of [start, end], atomically per
	// entry. It re-checks capacity under the entry lock and returns
	// ErrInsufficientStock when any day cannot absorb qty.
	Reserve(ctx context.Context, entryID uuid.UUID, qty int, start, end time.Time) error

	// Release subtracts qty from every day bucket of [start, end]. Callers
	// guarantee exactly-once release per booking.
	Release(ctx context.Context, entryID uuid.UUID, qty int, start, end time.Time) error
}
