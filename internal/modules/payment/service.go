package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lusakatech/rentiva-backend/internal/modules/booking"
)

// Service defines payment business logic. A captured charge confirms the
// booking; a failed charge cancels it so the reservation is not retained.
type Service interface {
	Charge(ctx context.Context, req ChargeRequest) (*Transaction, error)
	Refund(ctx context.Context, transactionID string) (*Transaction, error)
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*Transaction, error)
}

type service struct {
	repo     Repository
	gateways GatewayRegistry
	bookings booking.Service
}

// NewService creates a new payment service.
func NewService(repo Repository, gateways GatewayRegistry, bookings booking.Service) Service {
	return &service{repo: repo, gateways: gateways, bookings: bookings}
}

func (s *service) Charge(ctx context.Context, req ChargeRequest) (*Transaction, error) {
	b, err := s.bookings.GetBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusPending {
		return nil, fmt.Errorf("booking %s is not payable (status %s)", b.BookingNumber, b.Status)
	}

	provider := Provider(strings.ToUpper(req.Provider))
	gw, ok := s.gateways[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported payment provider %q", req.Provider)
	}

	tx := &Transaction{
		ID:          uuid.New(),
		BookingID:   b.ID,
		Provider:    provider,
		Status:      TxPending,
		Amount:      b.Pricing.TotalAmount,
		Currency:    b.Currency,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	res, err := gw.Charge(ctx, tx.Amount, tx.Currency, tx.PhoneNumber)
	if err != nil || !res.Captured {
		reason := "charge declined"
		if err != nil {
			reason = err.Error()
		}
		tx.Status = TxFailed
		tx.LastError = reason
		if uerr := s.repo.UpdateStatus(ctx, tx.ID.String(), TxFailed, "", reason); uerr != nil {
			return nil, uerr
		}
		// A failed payment must not retain the reservation.
		if _, cerr := s.bookings.Transition(ctx, b.ID.String(), booking.StatusCancelled, booking.RoleSystem); cerr != nil {
			return tx, fmt.Errorf("payment failed and booking cancel failed: %w", cerr)
		}
		return tx, nil
	}

	tx.Status = TxCaptured
	tx.ProviderRef = res.ProviderRef
	if err := s.repo.UpdateStatus(ctx, tx.ID.String(), TxCaptured, res.ProviderRef, ""); err != nil {
		return nil, err
	}

	if _, err := s.bookings.Transition(ctx, b.ID.String(), booking.StatusConfirmed, booking.RoleSystem); err != nil {
		return tx, fmt.Errorf("payment captured but booking confirm failed: %w", err)
	}
	return tx, nil
}

func (s *service) Refund(ctx context.Context, transactionID string) (*Transaction, error) {
	tx, err := s.repo.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Status != TxCaptured {
		return nil, fmt.Errorf("only captured transactions can be refunded (status %s)", tx.Status)
	}

	gw, ok := s.gateways[tx.Provider]
	if !ok {
		return nil, fmt.Errorf("no gateway registered for provider %q", tx.Provider)
	}
	if _, err := gw.Refund(ctx, tx.ProviderRef, tx.Amount); err != nil {
		return nil, err
	}

	tx.Status = TxRefunded
	if err := s.repo.UpdateStatus(ctx, tx.ID.String(), TxRefunded, tx.ProviderRef, ""); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *service) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetTransactionByID(ctx, id)
}

func (s *service) ListByBooking(ctx context.Context, bookingID string) ([]*Transaction, error) {
	return s.repo.ListTransactionsByBooking(ctx, bookingID)
}
