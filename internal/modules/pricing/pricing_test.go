package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	// dailyRate=500, quantity=1, days=3, deposit=5000 ->
	// base=1500, tax=270, total=6770
	q, err := Calculate(500, 1, 3, 5000, true)
	require.NoError(t, err)

	assert.Equal(t, 3, q.Days)
	assert.Equal(t, int64(1500), q.BaseAmount)
	assert.Equal(t, int64(5000), q.DepositAmount)
	assert.Equal(t, int64(270), q.TaxAmount)
	assert.Equal(t, int64(6770), q.TotalAmount)
}

func TestCalculateDepositNotRequired(t *testing.T) {
	q, err := Calculate(500, 1, 3, 5000, false)
	require.NoError(t, err)

	assert.Equal(t, int64(0), q.DepositAmount)
	assert.Equal(t, int64(1770), q.TotalAmount)
}

func TestCalculateMultipleUnits(t *testing.T) {
	q, err := Calculate(1000, 4, 7, 0, false)
	require.NoError(t, err)

	assert.Equal(t, int64(28000), q.BaseAmount)
	assert.Equal(t, int64(5040), q.TaxAmount)
	assert.Equal(t, int64(33040), q.TotalAmount)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		rate     int64
		quantity int
		days     int
	}{
		{"zero rate", 0, 1, 3},
		{"negative rate", -500, 1, 3},
		{"zero quantity", 500, 0, 3},
		{"zero days", 500, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.rate, tc.quantity, tc.days, 0, false)
			assert.Error(t, err)
		})
	}
}

func TestCalculateTaxRounding(t *testing.T) {
	// 18% of 55 = 9.9, rounds to 10 minor units.
	q, err := Calculate(55, 1, 1, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(10), q.TaxAmount)
}
