package checkout

import (
	"motoschool/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldLabels maps struct namespaces to the names shown to the user.
var fieldLabels = map[string]string{
	"BookingDraft.CourseID":              "course",
	"BookingDraft.LocationID":            "location",
	"BookingDraft.SelectedDate":          "date",
	"BookingDraft.CourseEventID":         "date",
	"BookingDraft.AttendeeCount":         "number of attendees",
	"BookingDraft.UserDetails.FirstName": "first name",
	"BookingDraft.UserDetails.LastName":  "last name",
	"BookingDraft.UserDetails.Email":     "email",
	"BookingDraft.Password":              "password",
}

// ValidateDraft checks every required submission field at once and returns a
// ValidationError enumerating all failures. Validate-all, not fail-fast: the
// user gets the complete list in a single message.
func ValidateDraft(draft models.BookingDraft) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	verr := NewValidationError()
	for _, fe := range fieldErrs {
		label := fieldLabels[fe.Namespace()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "email":
			verr.Add(label, "must be a valid email address")
		case "min":
			verr.Add(label, "must be at least "+fe.Param())
		default:
			verr.Add(label, "is required")
		}
	}
	return verr
}
