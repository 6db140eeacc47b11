package payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusakatech/rentiva-backend/internal/modules/booking"
	"github.com/lusakatech/rentiva-backend/internal/modules/catalog"
	"github.com/lusakatech/rentiva-backend/internal/modules/inventory"
	"github.com/lusakatech/rentiva-backend/internal/modules/notify"
)

// fakeGateway is a scriptable Gateway for exercising both charge outcomes.
type fakeGateway struct {
	capture   bool
	chargeErr error
	refundErr error
}

func (g *fakeGateway) Charge(context.Context, int64, string, string) (*ChargeResult, error) {
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	if !g.capture {
		return &ChargeResult{Captured: false, Message: "insufficient funds"}, nil
	}
	return &ChargeResult{Captured: true, ProviderRef: "FAKE-REF-0001"}, nil
}

func (g *fakeGateway) Refund(context.Context, string, int64) (*ChargeResult, error) {
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	return &ChargeResult{Captured: true, ProviderRef: "FAKE-REFUND-0001"}, nil
}

type memoryTxRepo struct {
	mu  sync.Mutex
	txs map[uuid.UUID]*Transaction
}

func newMemoryTxRepo() *memoryTxRepo {
	return &memoryTxRepo{txs: make(map[uuid.UUID]*Transaction)}
}

func (r *memoryTxRepo) CreateTransaction(_ context.Context, tx *Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.txs[tx.ID] = &cp
	return nil
}

func (r *memoryTxRepo) GetTransactionByID(_ context.Context, id string) (*Transaction, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[uid]
	if !ok {
		return nil, errors.New("transaction not found")
	}
	cp := *tx
	return &cp, nil
}

func (r *memoryTxRepo) ListTransactionsByBooking(_ context.Context, bookingID string) ([]*Transaction, error) {
	uid, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Transaction
	for _, tx := range r.txs {
		if tx.BookingID == uid {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryTxRepo) UpdateStatus(_ context.Context, id string, status TxStatus, providerRef, lastError string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[uid]
	if !ok {
		return errors.New("transaction not found")
	}
	tx.Status = status
	if providerRef != "" {
		tx.ProviderRef = providerRef
	}
	tx.LastError = lastError
	tx.UpdatedAt = time.Now()
	return nil
}

type stubCatalog struct {
	product *catalog.Product
}

func (s *stubCatalog) CreateProduct(context.Context, catalog.CreateProductRequest) (*catalog.Product, error) {
	return s.product, nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	if s.product == nil || s.product.ID.String() != id {
		return nil, errors.New("product not found")
	}
	return s.product, nil
}

func (s *stubCatalog) ListByProvider(context.Context, string) ([]*catalog.Product, error) {
	return []*catalog.Product{s.product}, nil
}

func (s *stubCatalog) ListByCategory(context.Context, string) ([]*catalog.Product, error) {
	return []*catalog.Product{s.product}, nil
}

func (s *stubCatalog) Deactivate(context.Context, string) error { return nil }

type fixture struct {
	svc      Service
	gw       *fakeGateway
	bookings booking.Service
	inv      inventory.Service
	booked   *booking.Booking
	product  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	productID := uuid.New()
	locationID := uuid.New()
	cat := &stubCatalog{product: &catalog.Product{
		ID:        productID,
		Name:      "Power generator",
		Category:  "equipment",
		BasePrice: catalog.RateCard{Daily: 500},
		Deposit:   catalog.Deposit{Amount: 5000, Required: true},
		Currency:  "ZMW",
		IsActive:  true,
	}}

	inv := inventory.NewService(inventory.NewMemoryRepository())
	_, err := inv.CreateEntry(context.Background(), inventory.CreateEntryRequest{
		ProductID:  productID.String(),
		LocationID: locationID.String(),
		Quantity:   5,
	})
	require.NoError(t, err)

	bookings := booking.NewService(booking.NewMemoryRepository(), inv, cat, notify.NopRelay{})
	today := inventory.DateOnly(time.Now())
	b, err := bookings.CreateBooking(context.Background(), uuid.New(), booking.CreateBookingRequest{
		ProductID:  productID.String(),
		LocationID: locationID.String(),
		Quantity:   1,
		StartDate:  today.AddDate(0, 0, 1),
		EndDate:    today.AddDate(0, 0, 3),
		Delivery: booking.Delivery{
			Type: booking.DeliveryPickup,
			ContactPerson: booking.ContactPerson{
				Name:  "Chanda Mwila",
				Phone: "+260 97 1234567",
				Email: "chanda@example.com",
			},
		},
	})
	require.NoError(t, err)

	gw := &fakeGateway{capture: true}
	svc := NewService(newMemoryTxRepo(), GatewayRegistry{
		ProviderMobileMoney: gw,
	}, bookings)

	return &fixture{svc: svc, gw: gw, bookings: bookings, inv: inv, booked: b, product: productID}
}

func (f *fixture) bookingStatus(t *testing.T) booking.Status {
	t.Helper()
	b, err := f.bookings.GetBooking(context.Background(), f.booked.ID.String())
	require.NoError(t, err)
	return b.Status
}

func TestChargeCapturedConfirmsBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.svc.Charge(ctx, ChargeRequest{
		BookingID:   f.booked.ID.String(),
		Provider:    "mobile_money",
		PhoneNumber: "+260971234567",
	})
	require.NoError(t, err)

	assert.Equal(t, TxCaptured, tx.Status)
	assert.Equal(t, "FAKE-REF-0001", tx.ProviderRef)
	assert.Equal(t, f.booked.Pricing.TotalAmount, tx.Amount)
	assert.Equal(t, "ZMW", tx.Currency)
	assert.Equal(t, booking.StatusConfirmed, f.bookingStatus(t))
}

func TestChargeDeclinedCancelsBooking(t *testing.T) {
	f := newFixture(t)
	f.gw.capture = false

	tx, err := f.svc.Charge(context.Background(), ChargeRequest{
		BookingID: f.booked.ID.String(),
		Provider:  "MOBILE_MONEY",
	})
	require.NoError(t, err)

	assert.Equal(t, TxFailed, tx.Status)
	assert.Equal(t, "charge declined", tx.LastError)
	assert.Equal(t, booking.StatusCancelled, f.bookingStatus(t))

	// The reservation was handed back with the cancel.
	entries, err := f.inv.ListByProduct(context.Background(), f.product.String())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Reserved)
}

func TestChargeGatewayErrorCancelsBooking(t *testing.T) {
	f := newFixture(t)
	f.gw.chargeErr = errors.New("aggregator timeout")

	tx, err := f.svc.Charge(context.Background(), ChargeRequest{
		BookingID: f.booked.ID.String(),
		Provider:  "MOBILE_MONEY",
	})
	require.NoError(t, err)

	assert.Equal(t, TxFailed, tx.Status)
	assert.Equal(t, "aggregator timeout", tx.LastError)
	assert.Equal(t, booking.StatusCancelled, f.bookingStatus(t))
}

func TestChargeUnsupportedProvider(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Charge(context.Background(), ChargeRequest{
		BookingID: f.booked.ID.String(),
		Provider:  "BARTER",
	})
	assert.ErrorContains(t, err, "unsupported payment provider")
	assert.Equal(t, booking.StatusPending, f.bookingStatus(t))
}

func TestChargeRejectsNonPendingBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Charge(ctx, ChargeRequest{
		BookingID: f.booked.ID.String(),
		Provider:  "MOBILE_MONEY",
	})
	require.NoError(t, err)

	// Paying again after confirmation is refused.
	_, err = f.svc.Charge(ctx, ChargeRequest{
		BookingID: f.booked.ID.String(),
		Provider:  "MOBILE_MONEY",
	})
	assert.ErrorContains(t, err, "not payable")
}

func TestRefund(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.svc.Charge(ctx, ChargeRequest{
		BookingID: f.booked.ID.String(),
		Provider:  "MOBILE_MONEY",
	})
	require.NoError(t, err)

	refunded, err := f.svc.Refund(ctx, tx.ID.String())
	require.NoError(t, err)
	assert.Equal(t, TxRefunded, refunded.Status)
}

func TestRefundRequiresCapture(t *testing.T) {
	f := newFixture(t)
	f.gw.capture = false
	ctx := context.Background()

	tx, err := f.svc.Charge(ctx, ChargeRequest{
		BookingID: f.booked.ID.String(),
		Provider:  "MOBILE_MONEY",
	})
	require.NoError(t, err)
	require.Equal(t, TxFailed, tx.Status)

	_, err = f.svc.Refund(ctx, tx.ID.String())
	assert.ErrorContains(t, err, "only captured transactions")
}
