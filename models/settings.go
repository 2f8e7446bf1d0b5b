package models

// BookingSettings carries checkout-wide parameters from the upstream API.
type BookingSettings struct {
	VATRate             float64 `json:"vat_rate"`
	CreditCardSurcharge float64 `json:"credit_card_surcharge"`
	DepositAmount       float64 `json:"deposit_amount,omitempty"`
	BookingEmail        string  `json:"booking_email,omitempty"`
	BookingPhone        string  `json:"booking_phone,omitempty"`
}
