package schoolapi

import (
	"context"

	"motoschool/models"
)

// CreateBooking submits the completed checkout to the upstream API. The
// returned payment token is handed to the redirect gateway by the caller.
func (c *DefaultClient) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResult, error) {
	var result models.BookingResult
	if err := c.postJSON(ctx, "/create-with-attendees", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
