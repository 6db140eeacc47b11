package location

import (
	"time"

	"github.com/google/uuid"
)

// LocationType distinguishes fulfilment sites.
type LocationType string

const (
	TypeWarehouse LocationType = "WAREHOUSE"
	TypeStore     LocationType = "STORE"
)

// Location is a site where rental stock is held and handed over.
type Location struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Type      LocationType `json:"type"`
	Address   string       `json:"address"`
	City      string       `json:"city,omitempty"`
	Country   string       `json:"country"`
	Phone     string       `json:"phone,omitempty"`
	OpensAt   string       `json:"opens_at,omitempty"`  // "08:00"
	ClosesAt  string       `json:"closes_at,omitempty"` // "18:00"
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
