package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo is an in-memory Repository used by tests. It honours the same
// atomicity contract as the postgres implementation: a single mutex
// serialises reserve/release per process.
type memoryRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*Entry
	// day buckets: entryID -> day (UTC midnight) -> reserved units
	days map[uuid.UUID]map[time.Time]int
}

// NewMemoryRepository creates an empty in-memory inventory repository.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		entries: make(map[uuid.UUID]*Entry),
		days:    make(map[uuid.UUID]map[time.Time]int),
	}
}

func (r *memoryRepo) CreateEntry(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	cp := *e
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.entries[e.ID] = &cp
	r.days[e.ID] = make(map[time.Time]int)
	return nil
}

func (r *memoryRepo) GetEntryByID(_ context.Context, id string) (*Entry, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[uid]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memoryRepo) GetEntryByProductLocation(_ context.Context, productID, locationID string) (*Entry, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	lid, err := uuid.Parse(locationID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ProductID == pid && e.LocationID == lid {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) ListEntriesByProduct(_ context.Context, productID string) ([]*Entry, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []*Entry
	for _, e := range r.entries {
		if e.ProductID == pid {
			cp := *e
			entries = append(entries, &cp)
		}
	}
	return entries, nil
}

func (r *memoryRepo) PeakLoad(_ context.Context, entryID uuid.UUID, start, end time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entryID]; !ok {
		return 0, ErrNotFound
	}
	return r.peakLocked(entryID, start, end), nil
}

func (r *memoryRepo) Reserve(_ context.Context, entryID uuid.UUID, qty int, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok {
		return ErrNotFound
	}
	if r.peakLocked(entryID, start, end)+qty > e.Quantity {
		return ErrInsufficientStock
	}
	eachDay(start, end, func(day time.Time) {
		r.days[entryID][day] += qty
	})
	r.syncPeakLocked(e)
	return nil
}

func (r *memoryRepo) Release(_ context.Context, entryID uuid.UUID, qty int, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok {
		return ErrNotFound
	}
	eachDay(start, end, func(day time.Time) {
		r.days[entryID][day] -= qty
		if r.days[entryID][day] <= 0 {
			delete(r.days[entryID], day)
		}
	})
	r.syncPeakLocked(e)
	return nil
}

func (r *memoryRepo) peakLocked(entryID uuid.UUID, start, end time.Time) int {
	peak := 0
	eachDay(start, end, func(day time.Time) {
		if load := r.days[entryID][day]; load > peak {
			peak = load
		}
	})
	return peak
}

func (r *memoryRepo) syncPeakLocked(e *Entry) {
	peak := 0
	for _, load := range r.days[e.ID] {
		if load > peak {
			peak = load
		}
	}
	e.Reserved = peak
	e.UpdatedAt = time.Now()
}
