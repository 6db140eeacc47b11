package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lusakatech/rentiva-backend/internal/modules/pricing"
)

// Status represents the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusApproved  Status = "APPROVED"
	StatusPickedUp  Status = "PICKED_UP"
	StatusInUse     Status = "IN_USE"
	StatusReturned  Status = "RETURNED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
)

// DeliveryType indicates how the customer receives the rented units.
type DeliveryType string

const (
	DeliveryToAddress DeliveryType = "DELIVERY"
	DeliveryPickup    DeliveryType = "PICKUP"
)

// ContactPerson is who the provider coordinates the handover with.
type ContactPerson struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Delivery describes the handover arrangement for a booking.
type Delivery struct {
	Type          DeliveryType  `json:"type"`
	Address       string        `json:"address,omitempty"`        // required for DELIVERY
	PickupAddress string        `json:"pickup_address,omitempty"` // filled from the location for PICKUP
	ContactPerson ContactPerson `json:"contact_person"`
}

// Booking is a customer's reservation of product units at a location for a
// date range. Its reserved units are held from admission until the first
// transition into a terminal state.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	BookingNumber string        `json:"booking_number"`
	ProductID     uuid.UUID     `json:"product_id"`
	LocationID    uuid.UUID     `json:"location_id"`
	EntryID       uuid.UUID     `json:"entry_id"` // inventory entry holding the reservation
	CustomerID    uuid.UUID     `json:"customer_id"`
	Quantity      int           `json:"quantity"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	Status        Status        `json:"status"`
	Pricing       pricing.Quote `json:"pricing"`
	Currency      string        `json:"currency"`
	PaymentMethod string        `json:"payment_method"`
	Delivery      Delivery      `json:"delivery"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CreateBookingRequest is the payload for booking admission.
type CreateBookingRequest struct {
	ProductID     string    `json:"product_id"`
	LocationID    string    `json:"location_id"`
	Quantity      int       `json:"quantity"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	PaymentMethod string    `json:"payment_method"`
	Delivery      Delivery  `json:"delivery"`
	Notes         string    `json:"notes,omitempty"`
}

// UpdateStatusRequest is the payload for requesting a lifecycle transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ValidationError reports a malformed request field. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	// ErrInvalidTransition signals a lifecycle move the transition table
	// does not allow for the requester's role.
	ErrInvalidTransition = errors.New("transition not allowed")

	// ErrNotFound signals an unknown booking.
	ErrNotFound = errors.New("booking not found")
)
