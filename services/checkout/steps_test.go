package checkout

import (
	"testing"
	"time"

	"motoschool/models"
)

func sessionWithSelection() *models.CheckoutSession {
	sess := &models.CheckoutSession{SessionID: "t"}
	applyCourse(sess, models.Course{ID: "cbt", CourseName: "CBT", SchoolOneOffPrice: 129})
	if err := applyLocation(sess, models.Location{ID: "leeds", LocationName: "Leeds"}); err != nil {
		panic(err)
	}
	sess.Availability = []models.CourseEvent{
		{Date: "2026-09-02", Available: true, AvailableSpaces: 4, CourseEventID: "ev-open"},
		{Date: "2026-09-03", Available: false, AvailableSpaces: 0, CourseEventID: "ev-full"},
	}
	return sess
}

var stepNow = time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)

func TestStepGatingOrder(t *testing.T) {
	sess := &models.CheckoutSession{SessionID: "t"}

	if err := applyLocation(sess, models.Location{ID: "leeds"}); err != ErrStepLocked {
		t.Errorf("location before course: err = %v, want ErrStepLocked", err)
	}
	if err := applyDate(sess, "2026-09-02", stepNow); err != ErrStepLocked {
		t.Errorf("date before location: err = %v, want ErrStepLocked", err)
	}
	if err := applyDetails(sess, models.UserDetails{}, nil); err != ErrStepLocked {
		t.Errorf("details before date: err = %v, want ErrStepLocked", err)
	}
	if err := applyAccount(sess, true, "pw"); err != ErrStepLocked {
		t.Errorf("account before date: err = %v, want ErrStepLocked", err)
	}
}

func TestUnavailableCellIsRejected(t *testing.T) {
	sess := sessionWithSelection()

	if err := applyDate(sess, "2026-09-03", stepNow); err != ErrDateUnavailable {
		t.Fatalf("err = %v, want ErrDateUnavailable", err)
	}
	if sess.Draft.SelectedDate != "" || sess.Draft.CourseEventID != "" {
		t.Errorf("rejected click wrote state: %+v", sess.Draft)
	}
	if sess.Draft.DateAndAttendeesChosen() {
		t.Error("date step reported complete after rejected click")
	}

	// A date outside the 6-week window is equally rejected.
	if err := applyDate(sess, "2027-01-01", stepNow); err != ErrDateUnavailable {
		t.Errorf("out-of-window date: err = %v, want ErrDateUnavailable", err)
	}
}

func TestAvailableCellIsAccepted(t *testing.T) {
	sess := sessionWithSelection()

	if err := applyDate(sess, "2026-09-02", stepNow); err != nil {
		t.Fatalf("applyDate: %v", err)
	}
	if sess.Draft.SelectedDate != "2026-09-02" || sess.Draft.CourseEventID != "ev-open" {
		t.Errorf("draft = %+v, want date and event recorded", sess.Draft)
	}
	if err := applyAttendees(sess, 2); err != nil {
		t.Fatalf("applyAttendees: %v", err)
	}
	if !sess.Draft.DateAndAttendeesChosen() {
		t.Error("date step not complete after valid date and count")
	}
}

func TestAttendeeCountMustBePositive(t *testing.T) {
	sess := sessionWithSelection()
	if err := applyAttendees(sess, 0); IsValidationError(err) == nil {
		t.Errorf("count 0: err = %v, want validation error", err)
	}
	if sess.Draft.AttendeeCount != 0 {
		t.Error("invalid count was recorded")
	}
}

func TestCourseChangeClearsDownstream(t *testing.T) {
	sess := sessionWithSelection()
	if err := applyDate(sess, "2026-09-02", stepNow); err != nil {
		t.Fatal(err)
	}
	if err := applyAttendees(sess, 2); err != nil {
		t.Fatal(err)
	}
	genBefore := sess.AvailabilityGen

	applyCourse(sess, models.Course{ID: "das", CourseName: "DAS", SchoolOneOffPrice: 599})

	d := sess.Draft
	if d.LocationID != "" || d.SelectedDate != "" || d.CourseEventID != "" || d.AttendeeCount != 0 {
		t.Errorf("downstream state survived course change: %+v", d)
	}
	if sess.Availability != nil {
		t.Error("cached availability survived course change")
	}
	if sess.AvailabilityGen <= genBefore {
		t.Error("availability generation not bumped on course change")
	}
}

func TestLocationChangeClearsDateState(t *testing.T) {
	sess := sessionWithSelection()
	if err := applyDate(sess, "2026-09-02", stepNow); err != nil {
		t.Fatal(err)
	}
	genBefore := sess.AvailabilityGen

	if err := applyLocation(sess, models.Location{ID: "york", LocationName: "York"}); err != nil {
		t.Fatal(err)
	}

	d := sess.Draft
	if d.CourseID != "cbt" {
		t.Error("course must survive a location change")
	}
	if d.SelectedDate != "" || d.CourseEventID != "" || d.AttendeeCount != 0 {
		t.Errorf("date state survived location change: %+v", d)
	}
	if sess.AvailabilityGen <= genBefore {
		t.Error("availability generation not bumped on location change")
	}
}

func TestCurrentStepProgression(t *testing.T) {
	sess := &models.CheckoutSession{}
	if got := sess.Draft.CurrentStep(); got != models.StepCourse {
		t.Errorf("empty draft step = %v, want course", got)
	}

	applyCourse(sess, models.Course{ID: "cbt"})
	if got := sess.Draft.CurrentStep(); got != models.StepLocation {
		t.Errorf("after course step = %v, want location", got)
	}

	sess = sessionWithSelection()
	if got := sess.Draft.CurrentStep(); got != models.StepDateAttendees {
		t.Errorf("after location step = %v, want date_attendees", got)
	}

	if err := applyDate(sess, "2026-09-02", stepNow); err != nil {
		t.Fatal(err)
	}
	if err := applyAttendees(sess, 1); err != nil {
		t.Fatal(err)
	}
	// Account is optional and never blocks: the gate moves straight to
	// personal details.
	if got := sess.Draft.CurrentStep(); got != models.StepPersonalDetails {
		t.Errorf("after date step = %v, want personal_details", got)
	}

	if err := applyDetails(sess, models.UserDetails{
		FirstName: "Sam", LastName: "Field", Email: "sam@example.com",
	}, nil); err != nil {
		t.Fatal(err)
	}
	if got := sess.Draft.CurrentStep(); got != models.StepReview {
		t.Errorf("after details step = %v, want review", got)
	}
	if !sess.Draft.ReviewReady() {
		t.Error("review not ready with complete details")
	}
}

func TestGuestCheckoutSkipsAccount(t *testing.T) {
	sess := sessionWithSelection()
	if err := applyDate(sess, "2026-09-02", stepNow); err != nil {
		t.Fatal(err)
	}
	if err := applyAttendees(sess, 1); err != nil {
		t.Fatal(err)
	}
	if !sess.Draft.StepEnabled(models.StepPersonalDetails) {
		t.Error("personal details blocked by the optional account step")
	}
}
