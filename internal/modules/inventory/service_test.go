package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *Entry) {
	t.Helper()
	repo := NewMemoryRepository()
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return testToday }

	entry, err := svc.CreateEntry(context.Background(), CreateEntryRequest{
		ProductID:   "7b0f0a4e-9b5e-4d7c-9a39-0f6a3f1c2d49",
		LocationID:  "3e2a1c9d-5f4b-4a6e-8c7d-1b2a3c4d5e6f",
		Quantity:    5,
		MinQuantity: 1,
		MaxQuantity: 5,
	})
	require.NoError(t, err)
	return svc, entry
}

func request(qty int, startOffset, endOffset int) AvailabilityRequest {
	return AvailabilityRequest{
		ProductID:  "7b0f0a4e-9b5e-4d7c-9a39-0f6a3f1c2d49",
		LocationID: "3e2a1c9d-5f4b-4a6e-8c7d-1b2a3c4d5e6f",
		Quantity:   qty,
		StartDate:  testToday.AddDate(0, 0, startOffset),
		EndDate:    testToday.AddDate(0, 0, endOffset),
	}
}

func TestCheckAvailability(t *testing.T) {
	svc, _ := newTestService(t)

	avail, err := svc.CheckAvailability(context.Background(), request(3, 1, 4))
	require.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Equal(t, 5, avail.Remaining)
}

func TestCheckAvailabilityInvalidDateRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// start >= end
	_, err := svc.CheckAvailability(ctx, request(1, 3, 3))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// start in the past, regardless of stock
	_, err = svc.CheckAvailability(ctx, request(1, -1, 3))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCheckAvailabilityQuantityBounds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckAvailability(ctx, request(0, 1, 3))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CheckAvailability(ctx, request(6, 1, 3))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestReserveAndRelease(t *testing.T) {
	svc, entry := newTestService(t)
	ctx := context.Background()

	// Take all 5 units; the counter reflects the peak day-load.
	reserved, err := svc.Reserve(ctx, request(5, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, 5, reserved.Reserved)
	assert.Equal(t, 0, reserved.Available())

	// One more unit on an overlapping window must fail.
	_, err = svc.Reserve(ctx, request(1, 2, 5))
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Round-trip law: a full release restores the pre-admission state.
	start := testToday.AddDate(0, 0, 1)
	end := testToday.AddDate(0, 0, 3)
	require.NoError(t, svc.Release(ctx, entry.ID.String(), 5, start, end))

	after, err := svc.GetEntry(ctx, entry.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, after.Reserved)

	// And the previously rejected request now succeeds.
	_, err = svc.Reserve(ctx, request(1, 2, 5))
	assert.NoError(t, err)
}

func TestNonOverlappingWindowsDontContend(t *testing.T) {
	svc, entry := newTestService(t)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, request(5, 1, 3))
	require.NoError(t, err)

	// Same units, later window: admits because no day is shared.
	_, err = svc.Reserve(ctx, request(5, 4, 6))
	require.NoError(t, err)

	after, err := svc.GetEntry(ctx, entry.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 5, after.Reserved)
}

func TestConcurrentLastUnit(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return testToday }

	_, err := svc.CreateEntry(context.Background(), CreateEntryRequest{
		ProductID:  "7b0f0a4e-9b5e-4d7c-9a39-0f6a3f1c2d49",
		LocationID: "3e2a1c9d-5f4b-4a6e-8c7d-1b2a3c4d5e6f",
		Quantity:   1,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), request(1, 1, 3))
		}(i)
	}
	wg.Wait()

	// Exactly one admission wins; the loser sees InsufficientStock.
	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, winners)
}
