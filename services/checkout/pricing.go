package checkout

import (
	"math"

	"motoschool/models"
)

// DefaultVATRate applies when the upstream settings omit a rate.
const DefaultVATRate = 0.2

// ComputeTotals derives subtotal, VAT and total from a unit price, attendee
// count and VAT rate. Invalid numeric inputs (NaN, infinities, negatives)
// coerce to zero instead of failing; an invalid VAT rate falls back to
// DefaultVATRate. No rounding happens here — display code rounds to two
// decimals, so repeated calculations stay exact.
func ComputeTotals(unitPrice float64, attendeeCount int, vatRate float64) models.PricingTotals {
	price := sanitizeAmount(unitPrice)
	count := attendeeCount
	if count < 0 {
		count = 0
	}
	rate := vatRate
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		rate = DefaultVATRate
	}

	subtotal := price * float64(count)
	vat := subtotal * rate
	return models.PricingTotals{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal + vat,
	}
}

func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
