// Package pricing computes rental charges. All amounts are integer minor
// currency units (ngwee); decimal arithmetic is only used for the tax
// multiplication so no float ever touches money.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRate is the statutory rate applied to the base rental amount.
var TaxRate = decimal.New(18, -2) // 18%

// Quote is the full price breakdown for a prospective booking.
type Quote struct {
	Days          int   `json:"days"`
	BaseAmount    int64 `json:"base_amount"`
	DepositAmount int64 `json:"deposit_amount"`
	TaxAmount     int64 `json:"tax_amount"`
	TotalAmount   int64 `json:"total_amount"`
}

// Calculate prices a rental: dailyRate * quantity * days, plus the deposit
// when required, plus tax on the base amount. The day count is inclusive of
// both the start and end dates. Weekly/monthly rates are not prorated; the
// daily rate applies regardless of range length.
func Calculate(dailyRate int64, quantity, days int, depositAmount int64, depositRequired bool) (*Quote, error) {
	if dailyRate <= 0 {
		return nil, fmt.Errorf("daily rate must be > 0")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}
	if days <= 0 {
		return nil, fmt.Errorf("rental days must be > 0")
	}

	base := dailyRate * int64(quantity) * int64(days)

	deposit := int64(0)
	if depositRequired {
		if depositAmount < 0 {
			return nil, fmt.Errorf("deposit amount must be >= 0")
		}
		deposit = depositAmount
	}

	tax := decimal.NewFromInt(base).Mul(TaxRate).Round(0).IntPart()

	return &Quote{
		Days:          days,
		BaseAmount:    base,
		DepositAmount: deposit,
		TaxAmount:     tax,
		TotalAmount:   base + deposit + tax,
	}, nil
}
