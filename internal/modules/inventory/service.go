package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines inventory business logic: the stock ledger and the
// availability checker for rental date ranges.
type Service interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error)
	GetEntry(ctx context.Context, id string) (*Entry, error)
	ListByProduct(ctx context.Context, productID string) ([]*Entry, error)

	// CheckAvailability answers whether qty units of the product at the
	// location are free for every day of [start, end].
	CheckAvailability(ctx context.Context, req AvailabilityRequest) (*Availability, error)

	// Reserve admits qty units for the date range after re-validating
	// bounds. Used by booking admission only.
	Reserve(ctx context.Context, req AvailabilityRequest) (*Entry, error)

	// Release returns qty units for the date range. Used by booking
	// lifecycle release only.
	Release(ctx context.Context, entryID string, qty int, start, end time.Time) error
}

// CreateEntryRequest holds data for registering stock at a location.
type CreateEntryRequest struct {
	ProductID   string `json:"product_id"`
	LocationID  string `json:"location_id"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	MaxQuantity int    `json:"max_quantity"`
}

// AvailabilityRequest identifies a prospective reservation.
type AvailabilityRequest struct {
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Quantity   int       `json:"quantity"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location_id: %w", err)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}

	minQty := req.MinQuantity
	if minQty <= 0 {
		minQty = 1
	}
	maxQty := req.MaxQuantity
	if maxQty <= 0 || maxQty > req.Quantity {
		maxQty = req.Quantity
	}
	if minQty > maxQty {
		return nil, fmt.Errorf("min_quantity %d exceeds max_quantity %d", minQty, maxQty)
	}

	e := &Entry{
		ID:          uuid.New(),
		ProductID:   productID,
		LocationID:  locationID,
		Quantity:    req.Quantity,
		Reserved:    0,
		MinQuantity: minQty,
		MaxQuantity: maxQty,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetEntry(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetEntryByID(ctx, id)
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]*Entry, error) {
	return s.repo.ListEntriesByProduct(ctx, productID)
}

func (s *service) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*Availability, error) {
	entry, start, end, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	peak, err := s.repo.PeakLoad(ctx, entry.ID, start, end)
	if err != nil {
		return nil, err
	}

	remaining := entry.Quantity - peak
	avail := &Availability{
		Available: req.Quantity <= remaining,
		Remaining: remaining,
		Entry:     entry,
		StartDate: start,
		EndDate:   end,
	}
	if !avail.Available {
		return avail, ErrInsufficientStock
	}
	return avail, nil
}

func (s *service) Reserve(ctx context.Context, req AvailabilityRequest) (*Entry, error) {
	entry, start, end, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	// Capacity is re-checked inside Reserve under the entry lock, so a
	// concurrent admission that won the race surfaces as ErrInsufficientStock
	// here rather than over-reserving.
	if err := s.repo.Reserve(ctx, entry.ID, req.Quantity, start, end); err != nil {
		return nil, err
	}
	return s.repo.GetEntryByID(ctx, entry.ID.String())
}

func (s *service) Release(ctx context.Context, entryID string, qty int, start, end time.Time) error {
	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	return s.repo.Release(ctx, entry.ID, qty, DateOnly(start), DateOnly(end))
}

// validate applies the date-range and quantity-bound checks shared by
// CheckAvailability and Reserve.
func (s *service) validate(ctx context.Context, req AvailabilityRequest) (*Entry, time.Time, time.Time, error) {
	var zero time.Time

	start := DateOnly(req.StartDate)
	end := DateOnly(req.EndDate)
	if !start.Before(end) {
		return nil, zero, zero, ErrInvalidDateRange
	}
	if start.Before(DateOnly(s.now())) {
		return nil, zero, zero, ErrInvalidDateRange
	}

	entry, err := s.repo.GetEntryByProductLocation(ctx, req.ProductID, req.LocationID)
	if err != nil {
		return nil, zero, zero, err
	}

	if req.Quantity <= 0 || req.Quantity < entry.MinQuantity || req.Quantity > entry.MaxQuantity {
		return nil, zero, zero, ErrInvalidQuantity
	}

	return entry, start, end, nil
}
