package payment

import (
	"time"

	"github.com/google/uuid"
)

// Provider represents a supported payment gateway.
type Provider string

const (
	ProviderMobileMoney Provider = "MOBILE_MONEY"
	ProviderCard        Provider = "CARD"
	ProviderCash        Provider = "CASH"
)

// TxStatus is the two-outcome lifecycle of a charge attempt, plus refunds.
type TxStatus string

const (
	TxPending  TxStatus = "PENDING"
	TxCaptured TxStatus = "CAPTURED"
	TxFailed   TxStatus = "FAILED"
	TxRefunded TxStatus = "REFUNDED"
)

// Transaction is the provider-agnostic record of a payment attempt against
// a booking. Amount is minor currency units.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	Provider    Provider  `json:"provider"`
	ProviderRef string    `json:"provider_ref,omitempty"`
	Status      TxStatus  `json:"status"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChargeRequest is the payload to pay for a booking.
type ChargeRequest struct {
	BookingID   string `json:"booking_id"`
	Provider    string `json:"provider"` // MOBILE_MONEY | CARD | CASH
	PhoneNumber string `json:"phone_number,omitempty"`
}
