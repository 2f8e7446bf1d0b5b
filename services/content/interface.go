package content

import (
	"context"

	"motoschool/models"
)

// Service serves CMS-driven content and shared booking data, cached in
// front of the upstream API so pages render from warm data.
type Service interface {
	Page(ctx context.Context, slug string) (*models.Page, error)
	Menu(ctx context.Context) ([]models.MenuItem, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Settings(ctx context.Context) (models.BookingSettings, error)

	// WarmCaches refreshes every cached dataset from upstream. Run
	// periodically by the cache-warmer worker.
	WarmCaches(ctx context.Context) error
}
