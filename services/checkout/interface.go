package checkout

import (
	"context"

	"motoschool/models"
)

// Service manages the stateful checkout funnel: one session per visitor,
// created on flow entry and destroyed on submission, cancellation or TTL
// expiry.
type Service interface {
	Start(ctx context.Context) (*models.CheckoutSession, error)
	Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	Cancel(ctx context.Context, sessionID string) error

	SelectCourse(ctx context.Context, sessionID, courseID string) (*models.CheckoutSession, error)
	SelectLocation(ctx context.Context, sessionID, locationID string) (*models.CheckoutSession, error)
	SelectDate(ctx context.Context, sessionID, date string) (*models.CheckoutSession, error)
	SetAttendees(ctx context.Context, sessionID string, count int) (*models.CheckoutSession, error)
	SetDetails(ctx context.Context, sessionID string, details models.UserDetails, attendees []models.Attendee) (*models.CheckoutSession, error)
	SetAccount(ctx context.Context, sessionID string, create bool, password string) (*models.CheckoutSession, error)

	RefreshAvailability(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	Grid(ctx context.Context, sessionID string) ([]models.CalendarWeek, error)
	Pricing(ctx context.Context, sessionID string) (models.PricingTotals, error)

	Submit(ctx context.Context, sessionID string) (*models.BookingResult, error)
}
