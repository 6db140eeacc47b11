package booking

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lusakatech/rentiva-backend/internal/modules/catalog"
	"github.com/lusakatech/rentiva-backend/internal/modules/inventory"
	"github.com/lusakatech/rentiva-backend/internal/modules/notify"
	"github.com/lusakatech/rentiva-backend/internal/modules/pricing"
	"github.com/lusakatech/rentiva-backend/internal/modules/user"
)

// reserveAttempts bounds the internal retry when a concurrent admission wins
// the race between the availability pre-check and the reservation.
const reserveAttempts = 3

// Service defines booking admission and lifecycle business logic.
type Service interface {
	// CreateBooking admits a booking: validates the request, prices it, and
	// reserves stock for the whole date range. The booking starts PENDING.
	CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*Booking, error)

	// Transition moves a booking through the lifecycle state machine on
	// behalf of the given role. Entering a terminal state releases the
	// reservation exactly once.
	Transition(ctx context.Context, id string, to Status, role user.Role) (*Booking, error)

	GetBooking(ctx context.Context, id string) (*Booking, error)
	GetBookingByNumber(ctx context.Context, number string) (*Booking, error)
	ListCustomerBookings(ctx context.Context, customerID string) ([]*Booking, error)
	ListProductBookings(ctx context.Context, productID, status string) ([]*Booking, error)

	// ExpireHolds cancels PENDING bookings older than ttl, releasing their
	// stock. Returns how many holds were expired.
	ExpireHolds(ctx context.Context, ttl time.Duration) (int, error)
}

type service struct {
	repo      Repository
	inventory inventory.Service
	catalog   catalog.Service
	relay     notify.Relay
	now       func() time.Time
}

// NewService creates a new booking service.
func NewService(repo Repository, inv inventory.Service, cat catalog.Service, relay notify.Relay) Service {
	return &service{repo: repo, inventory: inv, catalog: cat, relay: relay, now: time.Now}
}

func (s *service) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if !product.IsActive {
		return nil, &ValidationError{Field: "product_id", Reason: "product is no longer listed"}
	}

	availReq := inventory.AvailabilityRequest{
		ProductID:  req.ProductID,
		LocationID: req.LocationID,
		Quantity:   req.Quantity,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if _, err := s.inventory.CheckAvailability(ctx, availReq); err != nil {
		return nil, err
	}

	days := inventory.RentalDays(req.StartDate, req.EndDate)
	quote, err := pricing.Calculate(product.BasePrice.Daily, req.Quantity, days,
		product.Deposit.Amount, product.Deposit.Required)
	if err != nil {
		return nil, err
	}

	entry, err := s.reserveWithRetry(ctx, availReq)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:            uuid.New(),
		BookingNumber: generateBookingNumber(),
		ProductID:     entry.ProductID,
		LocationID:    entry.LocationID,
		EntryID:       entry.ID,
		CustomerID:    customerID,
		Quantity:      req.Quantity,
		StartDate:     inventory.DateOnly(req.StartDate),
		EndDate:       inventory.DateOnly(req.EndDate),
		Status:        StatusPending,
		Pricing:       *quote,
		Currency:      product.Currency,
		PaymentMethod: strings.ToUpper(req.PaymentMethod),
		Delivery:      req.Delivery,
		Notes:         req.Notes,
	}

	if err := s.repo.CreateBooking(ctx, b); err != nil {
		// Compensate: the reservation must not outlive a failed admission.
		if relErr := s.inventory.Release(ctx, entry.ID.String(), b.Quantity, b.StartDate, b.EndDate); relErr != nil {
			return nil, fmt.Errorf("persist booking: %v (release failed: %w)", err, relErr)
		}
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	s.relay.Publish(ctx, notify.Event{
		Type:      notify.EventBookingCreated,
		BookingID: b.ID,
		To:        string(b.Status),
		At:        s.now(),
	})
	return b, nil
}

// reserveWithRetry retries a lost reservation race a bounded number of
// times, re-checking availability between attempts so a genuine shortage
// surfaces as ErrInsufficientStock without spinning.
func (s *service) reserveWithRetry(ctx context.Context, req inventory.AvailabilityRequest) (*inventory.Entry, error) {
	var lastErr error
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		entry, err := s.inventory.Reserve(ctx, req)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, inventory.ErrInsufficientStock) {
			return nil, err
		}
		lastErr = err
		if _, err := s.inventory.CheckAvailability(ctx, req); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (s *service) Transition(ctx context.Context, id string, to Status, role user.Role) (*Booking, error) {
	b, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := b.Status
	if !CanTransition(from, to, role) {
		return nil, fmt.Errorf("%w: %s -> %s as %s", ErrInvalidTransition, from, to, role)
	}

	// The CAS is the exactly-once guard: a retried or concurrent transition
	// finds the status already moved and releases nothing.
	swapped, err := s.repo.UpdateStatusCAS(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, fmt.Errorf("%w: booking no longer %s", ErrInvalidTransition, from)
	}

	if releasesStock(to) {
		if err := s.inventory.Release(ctx, b.EntryID.String(), b.Quantity, b.StartDate, b.EndDate); err != nil {
			// The hold must not stay behind a terminal status: revert the
			// swap so a retried transition releases it.
			if _, rerr := s.repo.UpdateStatusCAS(ctx, id, to, from); rerr != nil {
				return nil, fmt.Errorf("release stock for %s: %v (status revert failed: %w)", b.BookingNumber, err, rerr)
			}
			return nil, fmt.Errorf("release stock for %s: %w", b.BookingNumber, err)
		}
	}

	b.Status = to
	s.relay.Publish(ctx, notify.Event{
		Type:      notify.EventBookingStatusChanged,
		BookingID: b.ID,
		From:      string(from),
		To:        string(to),
		At:        s.now(),
	})
	return b, nil
}

func (s *service) GetBooking(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetBookingByID(ctx, id)
}

func (s *service) GetBookingByNumber(ctx context.Context, number string) (*Booking, error) {
	return s.repo.GetBookingByNumber(ctx, number)
}

func (s *service) ListCustomerBookings(ctx context.Context, customerID string) ([]*Booking, error) {
	return s.repo.ListBookingsByCustomer(ctx, customerID)
}

func (s *service) ListProductBookings(ctx context.Context, productID, status string) ([]*Booking, error) {
	return s.repo.ListBookingsByProduct(ctx, productID, strings.ToUpper(status))
}

func (s *service) ExpireHolds(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.now().Add(-ttl)
	expired, err := s.repo.ListExpiredPending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, b := range expired {
		if _, err := s.Transition(ctx, b.ID.String(), StatusCancelled, RoleSystem); err != nil {
			// Another actor moved the booking first; skip it.
			if errors.Is(err, ErrInvalidTransition) {
				continue
			}
			return released, err
		}
		released++
	}
	return released, nil
}

// ── validation ───────────────────────────────────────────────────────────────

func validateRequest(req *CreateBookingRequest) error {
	if req.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be > 0"}
	}

	cp := req.Delivery.ContactPerson
	if strings.TrimSpace(cp.Name) == "" {
		return &ValidationError{Field: "delivery.contact_person.name", Reason: "must not be empty"}
	}
	if digitCount(cp.Phone) < 10 {
		return &ValidationError{Field: "delivery.contact_person.phone", Reason: "must contain at least 10 digits"}
	}
	if _, err := mail.ParseAddress(cp.Email); err != nil {
		return &ValidationError{Field: "delivery.contact_person.email", Reason: "must be a valid email address"}
	}

	switch req.Delivery.Type {
	case DeliveryToAddress:
		if strings.TrimSpace(req.Delivery.Address) == "" {
			return &ValidationError{Field: "delivery.address", Reason: "required for delivery type DELIVERY"}
		}
	case DeliveryPickup:
	case "":
		req.Delivery.Type = DeliveryPickup
	default:
		return &ValidationError{Field: "delivery.type", Reason: "must be DELIVERY or PICKUP"}
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = "CASH"
	}
	return nil
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// generateBookingNumber creates a human-readable booking number: BKG-YYYYMMDD-XXXX
func generateBookingNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("BKG-%s-%s", date, suffix)
}
