package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo is an in-memory Repository used by tests.
type memoryRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
}

// NewMemoryRepository creates an empty in-memory booking repository.
func NewMemoryRepository() Repository {
	return &memoryRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *memoryRepo) CreateBooking(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	cp := *b
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memoryRepo) GetBookingByID(_ context.Context, id string) (*Booking, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[uid]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepo) GetBookingByNumber(_ context.Context, number string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingNumber == number {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) ListBookingsByCustomer(_ context.Context, customerID string) ([]*Booking, error) {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.CustomerID == uid {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepo) ListBookingsByProduct(_ context.Context, productID string, status string) ([]*Booking, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.ProductID != uid {
			continue
		}
		if status != "" && b.Status != Status(status) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepo) UpdateStatusCAS(_ context.Context, id string, from, to Status) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[uid]
	if !ok {
		return false, ErrNotFound
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *memoryRepo) ListExpiredPending(_ context.Context, cutoff time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.Status == StatusPending && b.CreatedAt.Before(cutoff) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func sortNewestFirst(bookings []*Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
