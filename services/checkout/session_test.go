package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"motoschool/models"
)

// memStore is an in-memory SessionStore. It snapshots sessions through JSON
// like the Redis store does, so mutations of a loaded copy never leak back
// without an explicit Save.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Save(_ context.Context, sess *models.CheckoutSession, _ time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	m.data[sess.SessionID] = string(data)
	return nil
}

func (m *memStore) Get(_ context.Context, sessionID string) (*models.CheckoutSession, error) {
	raw, ok := m.data[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var sess models.CheckoutSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (m *memStore) Delete(_ context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

// fakeAPI is a canned upstream school API.
type fakeAPI struct {
	courses   []models.Course
	locations []models.Location
	events    []models.CourseEvent
	settings  models.BookingSettings

	availabilityErr error
	bookingErr      error
	settingsErr     error
	bookingResult   *models.BookingResult

	// onAvailability runs while an availability fetch is "in flight", before
	// the result is returned. Used to race a selection change against it.
	onAvailability func()

	availabilityCalls int
	bookingCalls      int
}

func (f *fakeAPI) Courses(context.Context) ([]models.Course, error) { return f.courses, nil }
func (f *fakeAPI) Locations(context.Context, string) ([]models.Location, error) {
	return f.locations, nil
}

func (f *fakeAPI) Availability(context.Context, string, string) ([]models.CourseEvent, error) {
	f.availabilityCalls++
	if f.onAvailability != nil {
		f.onAvailability()
	}
	if f.availabilityErr != nil {
		return nil, f.availabilityErr
	}
	return f.events, nil
}

func (f *fakeAPI) Settings(context.Context) (models.BookingSettings, error) {
	if f.settingsErr != nil {
		return models.BookingSettings{}, f.settingsErr
	}
	return f.settings, nil
}

func (f *fakeAPI) LicenceTypes(context.Context) ([]models.LicenceType, error) { return nil, nil }
func (f *fakeAPI) VehicleTypes(context.Context, string, string) ([]models.VehicleType, error) {
	return nil, nil
}

func (f *fakeAPI) CreateBooking(context.Context, models.CreateBookingRequest) (*models.BookingResult, error) {
	f.bookingCalls++
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return f.bookingResult, nil
}

func (f *fakeAPI) Login(context.Context, models.Credentials) (*models.AuthResult, error) {
	return nil, nil
}
func (f *fakeAPI) Register(context.Context, models.Credentials) (*models.AuthResult, error) {
	return nil, nil
}
func (f *fakeAPI) Page(context.Context, string) (*models.Page, error) { return nil, nil }
func (f *fakeAPI) Menu(context.Context) ([]models.MenuItem, error)    { return nil, nil }
func (f *fakeAPI) Ping(context.Context) error                         { return nil }

var testNow = time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)

func newTestService(api *fakeAPI) (*DefaultCheckoutService, *memStore) {
	store := newMemStore()
	svc := &DefaultCheckoutService{
		Store: store,
		API:   api,
		TTL:   time.Minute,
		Now:   func() time.Time { return testNow },
	}
	return svc, store
}

func defaultFakeAPI() *fakeAPI {
	return &fakeAPI{
		courses: []models.Course{
			{ID: "cbt", CourseName: "CBT", SchoolOneOffPrice: 129},
			{ID: "das", CourseName: "DAS", SchoolOneOffPrice: 599},
		},
		locations: []models.Location{
			{ID: "leeds", LocationName: "Leeds"},
		},
		events: []models.CourseEvent{
			{Date: "2026-09-02", Available: true, AvailableSpaces: 4, CourseEventID: "ev-open"},
		},
		settings:      models.BookingSettings{VATRate: 0.2},
		bookingResult: &models.BookingResult{BookingID: "b-1", BookingRef: "MS-1001", TotalAmount: 309.6, PaymentToken: "pay-token"},
	}
}

// advance walks a fresh session to the review step.
func advance(t *testing.T, svc *DefaultCheckoutService) string {
	t.Helper()
	ctx := context.Background()

	sess, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := sess.SessionID

	if _, err := svc.SelectCourse(ctx, id, "cbt"); err != nil {
		t.Fatalf("SelectCourse: %v", err)
	}
	if _, err := svc.SelectLocation(ctx, id, "leeds"); err != nil {
		t.Fatalf("SelectLocation: %v", err)
	}
	if _, err := svc.RefreshAvailability(ctx, id); err != nil {
		t.Fatalf("RefreshAvailability: %v", err)
	}
	if _, err := svc.SelectDate(ctx, id, "2026-09-02"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if _, err := svc.SetAttendees(ctx, id, 2); err != nil {
		t.Fatalf("SetAttendees: %v", err)
	}
	if _, err := svc.SetDetails(ctx, id, models.UserDetails{
		FirstName: "Sam", LastName: "Field", Email: "sam@example.com",
	}, nil); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}
	return id
}

func TestCheckoutHappyPath(t *testing.T) {
	api := defaultFakeAPI()
	svc, store := newTestService(api)
	ctx := context.Background()

	id := advance(t, svc)

	totals, err := svc.Pricing(ctx, id)
	if err != nil {
		t.Fatalf("Pricing: %v", err)
	}
	if totals.Subtotal != 258 {
		t.Errorf("subtotal = %v, want 258", totals.Subtotal)
	}

	result, err := svc.Submit(ctx, id)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.BookingRef != "MS-1001" || result.PaymentToken != "pay-token" {
		t.Errorf("result = %+v", result)
	}
	if _, err := store.Get(ctx, id); err != ErrSessionNotFound {
		t.Error("session must be destroyed after successful submission")
	}
}

func TestUnknownSelectionsRejected(t *testing.T) {
	svc, _ := newTestService(defaultFakeAPI())
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	if _, err := svc.SelectCourse(ctx, sess.SessionID, "nope"); err != ErrUnknownCourse {
		t.Errorf("err = %v, want ErrUnknownCourse", err)
	}
	if _, err := svc.SelectCourse(ctx, sess.SessionID, "cbt"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SelectLocation(ctx, sess.SessionID, "nowhere"); err != ErrUnknownLocation {
		t.Errorf("err = %v, want ErrUnknownLocation", err)
	}
}

func TestStaleAvailabilityFetchDiscarded(t *testing.T) {
	api := defaultFakeAPI()
	svc, store := newTestService(api)
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	id := sess.SessionID
	if _, err := svc.SelectCourse(ctx, id, "cbt"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SelectLocation(ctx, id, "leeds"); err != nil {
		t.Fatal(err)
	}

	// While the fetch is in flight the user switches course, which bumps
	// the availability generation.
	api.onAvailability = func() {
		current, err := store.Get(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		applyCourse(current, models.Course{ID: "das", CourseName: "DAS"})
		if err := store.Save(ctx, current, time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	after, err := svc.RefreshAvailability(ctx, id)
	if err != nil {
		t.Fatalf("RefreshAvailability: %v", err)
	}
	if len(after.Availability) != 0 {
		t.Error("stale fetch result overwrote availability for the new selection")
	}

	stored, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Availability) != 0 {
		t.Error("stale fetch result reached the store")
	}
}

func TestFreshAvailabilityFetchApplied(t *testing.T) {
	api := defaultFakeAPI()
	svc, _ := newTestService(api)
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	id := sess.SessionID
	if _, err := svc.SelectCourse(ctx, id, "cbt"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SelectLocation(ctx, id, "leeds"); err != nil {
		t.Fatal(err)
	}

	after, err := svc.RefreshAvailability(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Availability) != 1 || after.Availability[0].CourseEventID != "ev-open" {
		t.Errorf("availability = %+v", after.Availability)
	}
}

func TestSubmitValidatesAllFieldsAtOnce(t *testing.T) {
	svc, _ := newTestService(defaultFakeAPI())
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	_, err := svc.Submit(ctx, sess.SessionID)
	verr := IsValidationError(err)
	if verr == nil {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	for _, field := range []string{"course", "location", "date", "number of attendees", "first name", "last name", "email"} {
		if _, ok := verr.Fields()[field]; !ok {
			t.Errorf("missing field %q not reported; got %v", field, verr.Fields())
		}
	}
}

func TestSubmitRequiresPasswordWhenCreatingAccount(t *testing.T) {
	svc, _ := newTestService(defaultFakeAPI())
	ctx := context.Background()

	id := advance(t, svc)
	if _, err := svc.SetAccount(ctx, id, true, ""); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Submit(ctx, id)
	verr := IsValidationError(err)
	if verr == nil {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields()["password"]; !ok {
		t.Errorf("password not reported; got %v", verr.Fields())
	}
}

func TestDuplicateSubmissionRejected(t *testing.T) {
	svc, store := newTestService(defaultFakeAPI())
	ctx := context.Background()

	id := advance(t, svc)
	sess, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	sess.Submitting = true
	if err := store.Save(ctx, sess, time.Minute); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Submit(ctx, id); err != ErrSubmissionInFlight {
		t.Errorf("err = %v, want ErrSubmissionInFlight", err)
	}
}

func TestFailedSubmissionPreservesDraft(t *testing.T) {
	api := defaultFakeAPI()
	api.bookingErr = errors.New("upstream down")
	svc, store := newTestService(api)
	ctx := context.Background()

	id := advance(t, svc)
	if _, err := svc.Submit(ctx, id); err == nil {
		t.Fatal("expected submission error")
	}

	sess, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal("session vanished after a failed submission")
	}
	if sess.Submitting {
		t.Error("submission guard left set after failure")
	}
	if sess.Draft.CourseID != "cbt" || sess.Draft.UserDetails.Email != "sam@example.com" {
		t.Errorf("draft lost after failure: %+v", sess.Draft)
	}

	// A retry goes through once upstream recovers.
	api.bookingErr = nil
	if _, err := svc.Submit(ctx, id); err != nil {
		t.Errorf("retry failed: %v", err)
	}
}

func TestPricingFallsBackWhenSettingsUnavailable(t *testing.T) {
	api := defaultFakeAPI()
	api.settingsErr = errors.New("upstream down")
	svc, _ := newTestService(api)
	svc.FallbackVATRate = 0.2
	ctx := context.Background()

	id := advance(t, svc)
	totals, err := svc.Pricing(ctx, id)
	if err != nil {
		t.Fatalf("Pricing: %v", err)
	}
	want := 258 + 258*0.2
	if math.Abs(totals.Total-want) > eps {
		t.Errorf("total = %v, want %v with fallback VAT applied", totals.Total, want)
	}
}

func TestExpiredSession(t *testing.T) {
	svc, _ := newTestService(defaultFakeAPI())
	ctx := context.Background()

	if _, err := svc.Get(ctx, "gone"); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.SelectCourse(ctx, "gone", "cbt"); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
