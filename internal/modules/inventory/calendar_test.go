package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalDaysInclusive(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	// Both endpoints count: 10th, 11th, 12th.
	assert.Equal(t, 3, RentalDays(start, end))
	assert.Equal(t, 1, RentalDays(start, start))
}

func TestDateOnlyNormalisesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("CAT", 2*60*60)
	d := DateOnly(time.Date(2026, 3, 10, 23, 45, 0, 0, loc))

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), d)
}

func TestEachDayCoversRange(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

	var days []time.Time
	eachDay(start, end, func(day time.Time) { days = append(days, day) })

	assert.Len(t, days, 4)
	assert.Equal(t, start, days[0])
	assert.Equal(t, end, days[3])
}
