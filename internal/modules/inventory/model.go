package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entry is the stock record for one product at one location.
//
// Reserved is derived from the reservation calendar: it is the peak
// concurrent demand across all day buckets, so 0 <= Reserved <= Quantity
// holds even when non-overlapping bookings share the same units.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	LocationID  uuid.UUID `json:"location_id"`
	Quantity    int       `json:"quantity"`
	Reserved    int       `json:"reserved"`
	MinQuantity int       `json:"min_quantity"`
	MaxQuantity int       `json:"max_quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Available reports the unreserved units on the entry's tightest day.
func (e *Entry) Available() int {
	return e.Quantity - e.Reserved
}

// Availability is the answer to "can N units be rented from A to B?".
type Availability struct {
	Available bool      `json:"available"`
	Remaining int       `json:"remaining"` // spare units on the tightest day of the range
	Entry     *Entry    `json:"entry,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

var (
	// ErrInsufficientStock signals a capacity or concurrency conflict.
	// Safe to retry once after re-checking availability.
	ErrInsufficientStock = errors.New("insufficient stock for the requested date range")

	// ErrInvalidQuantity signals a quantity outside the entry's min/max bounds.
	ErrInvalidQuantity = errors.New("quantity outside the allowed range for this product")

	// ErrInvalidDateRange signals start >= end or a start date in the past.
	ErrInvalidDateRange = errors.New("invalid rental date range")

	// ErrNotFound signals an unknown inventory entry.
	ErrNotFound = errors.New("inventory entry not found")
)
