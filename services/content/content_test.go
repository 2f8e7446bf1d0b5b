package content

import (
	"context"
	"fmt"
	"testing"

	"motoschool/clients/schoolapi"
	"motoschool/models"
)

// stubAPI serves canned content. Call counts verify read-through behavior.
type stubAPI struct {
	pages     map[string]*models.Page
	menu      []models.MenuItem
	courses   []models.Course
	settings  models.BookingSettings
	pageCalls int
}

func (s *stubAPI) Courses(context.Context) ([]models.Course, error) { return s.courses, nil }
func (s *stubAPI) Locations(context.Context, string) ([]models.Location, error) {
	return nil, nil
}
func (s *stubAPI) Availability(context.Context, string, string) ([]models.CourseEvent, error) {
	return nil, nil
}
func (s *stubAPI) Settings(context.Context) (models.BookingSettings, error) {
	return s.settings, nil
}
func (s *stubAPI) LicenceTypes(context.Context) ([]models.LicenceType, error) { return nil, nil }
func (s *stubAPI) VehicleTypes(context.Context, string, string) ([]models.VehicleType, error) {
	return nil, nil
}
func (s *stubAPI) CreateBooking(context.Context, models.CreateBookingRequest) (*models.BookingResult, error) {
	return nil, nil
}
func (s *stubAPI) Login(context.Context, models.Credentials) (*models.AuthResult, error) {
	return nil, nil
}
func (s *stubAPI) Register(context.Context, models.Credentials) (*models.AuthResult, error) {
	return nil, nil
}

func (s *stubAPI) Page(_ context.Context, slug string) (*models.Page, error) {
	s.pageCalls++
	page, ok := s.pages[slug]
	if !ok {
		return nil, fmt.Errorf("%s: %w", slug, schoolapi.ErrNotFound)
	}
	return page, nil
}

func (s *stubAPI) Menu(context.Context) ([]models.MenuItem, error) { return s.menu, nil }
func (s *stubAPI) Ping(context.Context) error                      { return nil }

func TestPagePassThroughWithoutCache(t *testing.T) {
	api := &stubAPI{pages: map[string]*models.Page{
		"about": {Slug: "about", Title: "About us", Body: "<p>hello</p>"},
	}}
	svc := &DefaultContentService{API: api}

	page, err := svc.Page(context.Background(), "about")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Title != "About us" {
		t.Errorf("page = %+v", page)
	}
}

func TestMissingPageSurfacesNotFound(t *testing.T) {
	svc := &DefaultContentService{API: &stubAPI{}}

	_, err := svc.Page(context.Background(), "nope")
	if !schoolapi.IsNotFound(err) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMenuAndSettingsPassThrough(t *testing.T) {
	api := &stubAPI{
		menu:     []models.MenuItem{{Title: "Courses", Slug: "courses"}},
		settings: models.BookingSettings{VATRate: 0.2},
	}
	svc := &DefaultContentService{API: api}

	menu, err := svc.Menu(context.Background())
	if err != nil || len(menu) != 1 || menu[0].Slug != "courses" {
		t.Errorf("menu = %v, err = %v", menu, err)
	}

	settings, err := svc.Settings(context.Background())
	if err != nil || settings.VATRate != 0.2 {
		t.Errorf("settings = %+v, err = %v", settings, err)
	}
}
