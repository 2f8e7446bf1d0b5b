package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionNotFound means the checkout session expired or never existed.
	ErrSessionNotFound = errors.New("checkout session not found or expired")
	// ErrStepLocked means an operation was attempted before its gating step
	// completed (e.g. picking a date before a location).
	ErrStepLocked = errors.New("previous checkout step is not complete")
	// ErrDateUnavailable means the chosen calendar cell is not bookable.
	// Selecting such a cell is rejected outright, never a partial write.
	ErrDateUnavailable = errors.New("selected date is not available")
	// ErrSubmissionInFlight means a submission for this session is already
	// running; a second one is rejected until the first settles.
	ErrSubmissionInFlight = errors.New("a booking submission is already in progress")
	// ErrUnknownCourse / ErrUnknownLocation mean the chosen id is not in the
	// upstream list for the current selection.
	ErrUnknownCourse   = errors.New("selected course is not available")
	ErrUnknownLocation = errors.New("selected location does not offer this course")
)

// ValidationError accumulates every missing or malformed submission field so
// the user sees the full list in one message, not just the first failure.
type ValidationError struct {
	fields map[string][]string
	order  []string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

// IsValidationError unwraps err into a *ValidationError, or nil.
func IsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}

func (v *ValidationError) Add(field, msg string) {
	if _, seen := v.fields[field]; !seen {
		v.order = append(v.order, field)
	}
	for _, existing := range v.fields[field] {
		if existing == msg {
			return
		}
	}
	v.fields[field] = append(v.fields[field], msg)
}

func (v *ValidationError) FieldCount() int {
	return len(v.fields)
}

// Fields returns per-field messages for inline display.
func (v *ValidationError) Fields() map[string][]string {
	return v.fields
}

// Error joins every field's messages into one aggregate line.
func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.order))
	for _, field := range v.order {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v.fields[field], "; ")))
	}
	return strings.Join(parts, ", ")
}
