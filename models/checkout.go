package models

import "time"

// Step identifies one stage of the checkout funnel. Each step's operations
// are only accepted once every earlier step's completion predicate holds.
type Step int

const (
	StepCourse Step = iota
	StepLocation
	StepDateAttendees
	StepAccount
	StepPersonalDetails
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepCourse:
		return "course"
	case StepLocation:
		return "location"
	case StepDateAttendees:
		return "date_attendees"
	case StepAccount:
		return "account"
	case StepPersonalDetails:
		return "personal_details"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// UserDetails holds the lead booker's contact fields.
type UserDetails struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
}

// Attendee is one person attending the booked course.
type Attendee struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	LicenceType string `json:"licence_type,omitempty"`
	VehicleType string `json:"vehicle_type,omitempty"`
}

// BookingDraft accumulates the in-progress checkout. It lives only inside
// the active CheckoutSession and is discarded on abandonment or successful
// submission; it is never written to durable storage.
type BookingDraft struct {
	CourseID      string  `json:"course_id,omitempty" validate:"required"`
	CourseName    string  `json:"course_name,omitempty"`
	UnitPrice     float64 `json:"unit_price,omitempty"`
	LocationID    string  `json:"location_id,omitempty" validate:"required"`
	LocationName  string  `json:"location_name,omitempty"`
	SelectedDate  string  `json:"selected_date,omitempty" validate:"required"`
	CourseEventID string  `json:"course_event_id,omitempty" validate:"required"`
	AttendeeCount int     `json:"attendees_count,omitempty" validate:"min=1"`

	UserDetails UserDetails `json:"user_details"`
	Attendees   []Attendee  `json:"attendees,omitempty"`

	CreateAccount bool   `json:"create_account"`
	Password      string `json:"password,omitempty" validate:"required_if=CreateAccount true"`
}

// CheckoutSession wraps the draft with lifecycle and guard state. It is
// JSON-marshalled into Redis under SessionID with a sliding TTL, the only
// state this service owns.
type CheckoutSession struct {
	SessionID string       `json:"sessionId"`
	Draft     BookingDraft `json:"draft"`

	// Availability cached for the current (course, location) pair.
	Availability []CourseEvent `json:"availability,omitempty"`

	// AvailabilityGen is bumped on every course or location change. A
	// fetch started under an older generation is discarded on return.
	AvailabilityGen int `json:"availabilityGen"`

	// Submitting guards against a second submission while one is in flight.
	Submitting bool `json:"submitting"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CourseChosen reports the completion predicate of the course step.
func (d BookingDraft) CourseChosen() bool { return d.CourseID != "" }

// LocationChosen reports the completion predicate of the location step.
func (d BookingDraft) LocationChosen() bool { return d.LocationID != "" }

// DateAndAttendeesChosen reports the completion predicate of the
// date/attendees step: an available cell picked and at least one attendee.
func (d BookingDraft) DateAndAttendeesChosen() bool {
	return d.SelectedDate != "" && d.CourseEventID != "" && d.AttendeeCount >= 1
}

// PersonalDetailsComplete reports the completion predicate of the details
// step. First name, last name and email are all required.
func (d BookingDraft) PersonalDetailsComplete() bool {
	return d.UserDetails.FirstName != "" && d.UserDetails.LastName != "" && d.UserDetails.Email != ""
}

// CurrentStep returns the first incomplete step. The account step never
// blocks progression (guest checkout is always valid), so it is skipped
// when computing the gate.
func (d BookingDraft) CurrentStep() Step {
	switch {
	case !d.CourseChosen():
		return StepCourse
	case !d.LocationChosen():
		return StepLocation
	case !d.DateAndAttendeesChosen():
		return StepDateAttendees
	case !d.PersonalDetailsComplete():
		return StepPersonalDetails
	default:
		return StepReview
	}
}

// StepEnabled reports whether a step's UI section may be interacted with:
// every preceding blocking step must be complete.
func (d BookingDraft) StepEnabled(step Step) bool {
	return step <= d.CurrentStep()
}

// ReviewReady reports whether the review/payment step is reachable.
func (d BookingDraft) ReviewReady() bool {
	return d.CurrentStep() == StepReview
}
