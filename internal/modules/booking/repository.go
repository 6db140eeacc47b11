package booking

import (
	"context"
	"time"
)

// Repository defines booking data storage.
type Repository interface {
	// CreateBooking persists a newly admitted booking.
	CreateBooking(ctx context.Context, b *Booking) error

	// GetBookingByID retrieves a booking by UUID.
	GetBookingByID(ctx context.Context, id string) (*Booking, error)

	// GetBookingByNumber retrieves a booking by its human-readable number.
	GetBookingByNumber(ctx context.Context, number string) (*Booking, error)

	// ListBookingsByCustomer returns a customer's bookings, newest first.
	ListBookingsByCustomer(ctx context.Context, customerID string) ([]*Booking, error)

	// ListBookingsByProduct returns bookings for a product, optionally
	// filtered by status.
	ListBookingsByProduct(ctx context.Context, productID string, status string) ([]*Booking, error)

	// UpdateStatusCAS moves a booking from one status to another only when
	// it still holds the expected current status. Returns false when the
	// swap lost; that guard is what makes stock release exactly-once.
	UpdateStatusCAS(ctx context.Context, id string, from, to Status) (bool, error)

	// ListExpiredPending returns PENDING bookings created before the cutoff,
	// for the hold-expiry sweeper.
	ListExpiredPending(ctx context.Context, cutoff time.Time) ([]*Booking, error)
}
