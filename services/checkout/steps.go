package checkout

import (
	"time"

	"motoschool/models"
)

// Step mutators for the checkout funnel. Each enforces its gating predicate
// and, on upstream re-selection, invalidates everything scoped to the stale
// choice: a new course voids the location, date, attendee count and cached
// availability; a new location voids the date, attendee count and cached
// availability.

// applyCourse records the chosen course and clears all downstream state.
func applyCourse(sess *models.CheckoutSession, course models.Course) {
	sess.Draft.CourseID = course.ID
	sess.Draft.CourseName = course.CourseName
	sess.Draft.UnitPrice = course.SchoolOneOffPrice

	sess.Draft.LocationID = ""
	sess.Draft.LocationName = ""
	clearDateSelection(sess)
}

// applyLocation records the chosen location and clears date-scoped state.
// The location list itself is filtered by course upstream, so a course must
// already be chosen.
func applyLocation(sess *models.CheckoutSession, location models.Location) error {
	if !sess.Draft.CourseChosen() {
		return ErrStepLocked
	}
	sess.Draft.LocationID = location.ID
	sess.Draft.LocationName = location.LocationName
	clearDateSelection(sess)
	return nil
}

// applyDate records the chosen calendar cell. Clicking an unavailable cell
// is rejected whole; nothing is written.
func applyDate(sess *models.CheckoutSession, date string, now time.Time) error {
	if !sess.Draft.LocationChosen() {
		return ErrStepLocked
	}

	weeks := BuildCalendarWeeks(now, sess.Availability)
	cell := FindCell(weeks, date)
	if cell == nil || !cell.Available {
		return ErrDateUnavailable
	}

	sess.Draft.SelectedDate = date
	sess.Draft.CourseEventID = cell.CourseEventID
	return nil
}

// applyAttendees records the attendee count for the date step.
func applyAttendees(sess *models.CheckoutSession, count int) error {
	if !sess.Draft.LocationChosen() {
		return ErrStepLocked
	}
	if count < 1 {
		verr := NewValidationError()
		verr.Add("number of attendees", "must be at least 1")
		return verr
	}
	sess.Draft.AttendeeCount = count
	if len(sess.Draft.Attendees) > count {
		sess.Draft.Attendees = sess.Draft.Attendees[:count]
	}
	return nil
}

// applyAccount records the optional account-creation choice. This step never
// blocks progression; guest checkout is always valid.
func applyAccount(sess *models.CheckoutSession, create bool, password string) error {
	if !sess.Draft.DateAndAttendeesChosen() {
		return ErrStepLocked
	}
	sess.Draft.CreateAccount = create
	if create {
		sess.Draft.Password = password
	} else {
		sess.Draft.Password = ""
	}
	return nil
}

// applyDetails records the lead booker's contact fields and the attendee
// list for the personal-details step.
func applyDetails(sess *models.CheckoutSession, details models.UserDetails, attendees []models.Attendee) error {
	if !sess.Draft.DateAndAttendeesChosen() {
		return ErrStepLocked
	}
	sess.Draft.UserDetails = details
	sess.Draft.Attendees = attendees
	return nil
}

// clearDateSelection voids everything scoped to a (course, location) pair
// and bumps the availability generation so an in-flight fetch for the old
// pair is discarded when it lands.
func clearDateSelection(sess *models.CheckoutSession) {
	sess.Draft.SelectedDate = ""
	sess.Draft.CourseEventID = ""
	sess.Draft.AttendeeCount = 0
	sess.Availability = nil
	sess.AvailabilityGen++
}
