package models

// CreateBookingRequest is the payload POSTed to the upstream
// create-with-attendees endpoint when the checkout is submitted.
type CreateBookingRequest struct {
	CourseID      string      `json:"course_id"`
	CourseEventID string      `json:"course_event_id"`
	LocationID    string      `json:"location_id"`
	SelectedDate  string      `json:"selected_date"`
	AttendeeCount int         `json:"attendees_count"`
	UserDetails   UserDetails `json:"user_details"`
	Attendees     []Attendee  `json:"attendees"`
	CreateAccount bool        `json:"create_account"`
	Password      string      `json:"password,omitempty"`
}

// BookingResult is the upstream response to a successful submission. The
// payment token is handed to the redirect-based gateway; no payment is
// processed in this service.
type BookingResult struct {
	BookingID    string  `json:"booking_id"`
	BookingRef   string  `json:"booking_ref"`
	TotalAmount  float64 `json:"total_amount"`
	PaymentToken string  `json:"payment_token"`
}
