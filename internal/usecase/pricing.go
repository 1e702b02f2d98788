package usecase

import (
	"fmt"

	"hotel-booking/internal/data/entity"
)

// PricingInput holds everything the price computation depends on. The rate is
// the reservation's snapshot, never the room's current rate, so later rate
// edits cannot retroactively change a booked price.
type PricingInput struct {
	NightlyRate   float64
	Nights        int
	Quantity      int
	Extras        []PricedExtra
	DiscountType  entity.DiscountType
	DiscountValue float64
	TaxRate       float64
}

type PricedExtra struct {
	UnitPrice float64
	Quantity  int
}

// PriceBreakdown is the fully itemized result. Every intermediate is retained
// on the reservation for audit and display.
type PriceBreakdown struct {
	BaseAmount     float64
	ExtrasAmount   float64
	Subtotal       float64
	DiscountAmount float64
	TaxableAmount  float64
	TaxAmount      float64
	TotalAmount    float64
}

// Quote computes the itemized price. Pure function: identical inputs always
// yield identical totals. The only failure mode is a negative input.
func Quote(in PricingInput) (PriceBreakdown, error) {
	if in.NightlyRate < 0 {
		return PriceBreakdown{}, fmt.Errorf("nightly rate must not be negative, got %.2f", in.NightlyRate)
	}
	if in.Nights <= 0 {
		return PriceBreakdown{}, fmt.Errorf("nights must be positive, got %d", in.Nights)
	}
	if in.Quantity <= 0 {
		return PriceBreakdown{}, fmt.Errorf("quantity must be positive, got %d", in.Quantity)
	}
	if in.DiscountValue < 0 {
		return PriceBreakdown{}, fmt.Errorf("discount value must not be negative, got %.2f", in.DiscountValue)
	}
	if in.TaxRate < 0 {
		return PriceBreakdown{}, fmt.Errorf("tax rate must not be negative, got %.4f", in.TaxRate)
	}

	var breakdown PriceBreakdown

	breakdown.BaseAmount = in.NightlyRate * float64(in.Nights) * float64(in.Quantity)

	for _, extra := range in.Extras {
		if extra.UnitPrice < 0 {
			return PriceBreakdown{}, fmt.Errorf("extra unit price must not be negative, got %.2f", extra.UnitPrice)
		}
		if extra.Quantity < 0 {
			return PriceBreakdown{}, fmt.Errorf("extra quantity must not be negative, got %d", extra.Quantity)
		}
		breakdown.ExtrasAmount += extra.UnitPrice * float64(extra.Quantity)
	}

	breakdown.Subtotal = breakdown.BaseAmount + breakdown.ExtrasAmount

	switch in.DiscountType {
	case entity.DiscountTypePercentage:
		breakdown.DiscountAmount = breakdown.Subtotal * in.DiscountValue / 100
	case entity.DiscountTypeFixed:
		breakdown.DiscountAmount = in.DiscountValue
	case entity.DiscountTypeNone:
		breakdown.DiscountAmount = 0
	default:
		return PriceBreakdown{}, fmt.Errorf("unknown discount type %q", in.DiscountType)
	}

	// Clamp to [0, subtotal]: a fixed discount larger than the subtotal
	// zeroes the bill, it never goes negative.
	if breakdown.DiscountAmount < 0 {
		breakdown.DiscountAmount = 0
	}
	if breakdown.DiscountAmount > breakdown.Subtotal {
		breakdown.DiscountAmount = breakdown.Subtotal
	}

	breakdown.TaxableAmount = breakdown.Subtotal - breakdown.DiscountAmount
	breakdown.TaxAmount = breakdown.TaxableAmount * in.TaxRate
	breakdown.TotalAmount = breakdown.TaxableAmount + breakdown.TaxAmount

	return breakdown, nil
}
