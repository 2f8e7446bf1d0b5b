package checkout

import (
	"context"
	"fmt"
	"time"

	"motoschool/clients/schoolapi"
	"motoschool/models"
	"motoschool/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCheckoutService implements Service over a SessionStore and the
// upstream school API.
type DefaultCheckoutService struct {
	Store SessionStore
	API   schoolapi.Client
	TTL   time.Duration

	// FallbackVATRate applies when the upstream settings omit a rate.
	// Zero means DefaultVATRate.
	FallbackVATRate float64

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *DefaultCheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCheckoutService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 30 * time.Minute
}

// Start creates a fresh checkout session.
func (s *DefaultCheckoutService) Start(ctx context.Context) (*models.CheckoutSession, error) {
	sess := &models.CheckoutSession{
		SessionID: uuid.New().String(),
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := s.Store.Save(ctx, sess, s.ttl()); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads an active session.
func (s *DefaultCheckoutService) Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// Cancel abandons a session and discards its draft.
func (s *DefaultCheckoutService) Cancel(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultCheckoutService) save(ctx context.Context, sess *models.CheckoutSession) (*models.CheckoutSession, error) {
	sess.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, sess, s.ttl()); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectCourse records a course choice after checking it against the
// upstream course list. Everything scoped to the previous course is voided.
func (s *DefaultCheckoutService) SelectCourse(ctx context.Context, sessionID, courseID string) (*models.CheckoutSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	courses, err := s.API.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	var course *models.Course
	for i := range courses {
		if courses[i].ID == courseID {
			course = &courses[i]
			break
		}
	}
	if course == nil {
		return nil, ErrUnknownCourse
	}

	applyCourse(sess, *course)
	return s.save(ctx, sess)
}

// SelectLocation records a location choice after checking it against the
// locations offering the chosen course.
func (s *DefaultCheckoutService) SelectLocation(ctx context.Context, sessionID, locationID string) (*models.CheckoutSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Draft.CourseChosen() {
		return nil, ErrStepLocked
	}

	locations, err := s.API.Locations(ctx, sess.Draft.CourseID)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	var location *models.Location
	for i := range locations {
		if locations[i].ID == locationID {
			location = &locations[i]
			break
		}
	}
	if location == nil {
		return nil, ErrUnknownLocation
	}

	if err := applyLocation(sess, *location); err != nil {
		return nil, err
	}
	return s.save(ctx, sess)
}

// RefreshAvailability re-fetches events for the current (course, location)
// selection. The session's availability generation is recorded before the
// upstream call and compared after: if the selection changed while the fetch
// was in flight, the stale result is dropped instead of overwriting state.
func (s *DefaultCheckoutService) RefreshAvailability(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Draft.LocationChosen() {
		return nil, ErrStepLocked
	}
	gen := sess.AvailabilityGen

	events, err := s.API.Availability(ctx, sess.Draft.CourseID, sess.Draft.LocationID)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}

	sess, err = s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.AvailabilityGen != gen {
		utils.GetLogger().Info("discarding stale availability fetch",
			zap.String("sessionID", sessionID),
			zap.Int("fetchedGen", gen),
			zap.Int("currentGen", sess.AvailabilityGen))
		return sess, nil
	}

	sess.Availability = events
	return s.save(ctx, sess)
}

// Grid projects the session's cached availability onto the 6-week calendar.
func (s *DefaultCheckoutService) Grid(ctx context.Context, sessionID string) ([]models.CalendarWeek, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return BuildCalendarWeeks(s.now(), sess.Availability), nil
}

// SelectDate records a calendar cell choice. Unavailable cells are rejected.
func (s *DefaultCheckoutService) SelectDate(ctx context.Context, sessionID, date string) (*models.CheckoutSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := applyDate(sess, date, s.now()); err != nil {
		return nil, err
	}
	return s.save(ctx, sess)
}

// SetAttendees records the attendee count.
func (s *DefaultCheckoutService) SetAttendees(ctx context.Context, sessionID string, count int) (*models.CheckoutSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := applyAttendees(sess, count); err != nil {
		return nil, err
	}
	return s.save(ctx, sess)
}

// SetDetails records the lead booker's contact details and the attendees.
func (s *DefaultCheckoutService) SetDetails(ctx context.Context, sessionID string, details models.UserDetails, attendees []models.Attendee) (*models.CheckoutSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := applyDetails(sess, details, attendees); err != nil {
		return nil, err
	}
	return s.save(ctx, sess)
}

// SetAccount records the optional account-creation choice.
func (s *DefaultCheckoutService) SetAccount(ctx context.Context, sessionID string, create bool, password string) (*models.CheckoutSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := applyAccount(sess, create, password); err != nil {
		return nil, err
	}
	return s.save(ctx, sess)
}

// Pricing computes the running totals for the session from the course unit
// price, attendee count and the upstream VAT rate. When the settings call
// fails the fallback rate is used; pricing display must not take the
// checkout down.
func (s *DefaultCheckoutService) Pricing(ctx context.Context, sessionID string) (models.PricingTotals, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return models.PricingTotals{}, err
	}
	return ComputeTotals(sess.Draft.UnitPrice, sess.Draft.AttendeeCount, s.vatRate(ctx)), nil
}

func (s *DefaultCheckoutService) vatRate(ctx context.Context) float64 {
	fallback := s.FallbackVATRate
	if fallback <= 0 {
		fallback = DefaultVATRate
	}
	settings, err := s.API.Settings(ctx)
	if err != nil || settings.VATRate <= 0 {
		return fallback
	}
	return settings.VATRate
}

// Submit validates the whole draft, guards against a duplicate in-flight
// submission, and POSTs the booking upstream. On success the session is
// destroyed; on failure the draft is preserved so the user can retry without
// re-entering anything.
func (s *DefaultCheckoutService) Submit(ctx context.Context, sessionID string) (*models.BookingResult, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Submitting {
		return nil, ErrSubmissionInFlight
	}
	if err := ValidateDraft(sess.Draft); err != nil {
		return nil, err
	}

	sess.Submitting = true
	if _, err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	result, err := s.API.CreateBooking(ctx, models.CreateBookingRequest{
		CourseID:      sess.Draft.CourseID,
		CourseEventID: sess.Draft.CourseEventID,
		LocationID:    sess.Draft.LocationID,
		SelectedDate:  sess.Draft.SelectedDate,
		AttendeeCount: sess.Draft.AttendeeCount,
		UserDetails:   sess.Draft.UserDetails,
		Attendees:     sess.Draft.Attendees,
		CreateAccount: sess.Draft.CreateAccount,
		Password:      sess.Draft.Password,
	})
	if err != nil {
		// Clear the guard but keep the draft for a retry.
		if current, getErr := s.Store.Get(ctx, sessionID); getErr == nil {
			current.Submitting = false
			if _, saveErr := s.save(ctx, current); saveErr != nil {
				utils.GetLogger().Warn("failed to clear submission guard",
					zap.String("sessionID", sessionID), zap.Error(saveErr))
			}
		}
		return nil, fmt.Errorf("submit booking: %w", err)
	}

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to delete checkout session after submission",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
	return result, nil
}
