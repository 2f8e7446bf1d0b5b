package schoolapi

import (
	"context"

	"motoschool/models"
)

// Client defines the surface of the upstream school API: booking data, CMS
// content, and auth. The API itself is an external collaborator; nothing
// behind these calls is stored in this service.
type Client interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Locations(ctx context.Context, courseID string) ([]models.Location, error)
	Availability(ctx context.Context, courseID, locationID string) ([]models.CourseEvent, error)
	Settings(ctx context.Context) (models.BookingSettings, error)
	LicenceTypes(ctx context.Context) ([]models.LicenceType, error)
	VehicleTypes(ctx context.Context, courseID, locationID string) ([]models.VehicleType, error)

	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResult, error)

	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)

	Page(ctx context.Context, slug string) (*models.Page, error)
	Menu(ctx context.Context) ([]models.MenuItem, error)

	Ping(ctx context.Context) error
}
