package catalog

import (
	"time"

	"github.com/google/uuid"
)

// RateCard holds the rental rates for a product in minor currency units
// (ngwee). Only the daily rate feeds the pricing calculator; weekly and
// monthly rates are informational until proration ships.
type RateCard struct {
	Daily   int64 `json:"daily"`
	Weekly  int64 `json:"weekly,omitempty"`
	Monthly int64 `json:"monthly,omitempty"`
}

// Deposit is the refundable security amount charged alongside a booking.
type Deposit struct {
	Amount   int64 `json:"amount"`
	Required bool  `json:"required"`
}

// Product is a rentable item listed by a provider.
type Product struct {
	ID          uuid.UUID `json:"id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	BasePrice   RateCard  `json:"base_price"`
	Deposit     Deposit   `json:"deposit"`
	Currency    string    `json:"currency"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
