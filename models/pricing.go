package models

// PricingTotals is derived from (unitPrice, attendeeCount, vatRate). Pure
// projection; no rounding is applied here, display code rounds to 2 decimals.
type PricingTotals struct {
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}
