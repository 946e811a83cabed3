package domain

import (
	"regexp"
	"strings"
)

// User-facing validation messages
const (
	MsgSpam           = "Spam detected. Please try again."
	MsgRequired       = "Please fill in all required fields."
	MsgConsent        = "Please agree to the consent terms."
	MsgInvalidEmail   = "Please enter a valid email address."
	MsgEndBeforeStart = "End date must be after start date."
	MsgInvalidDate    = "Please enter dates as YYYY-MM-DD."
	MsgPastDate       = "Trip dates cannot be in the past."
)

// \p{Z} covers Unicode separators such as U+00A0 that RE2's \s does not
var emailPattern = regexp.MustCompile(`^[^\p{Z}\s@]+@[^\p{Z}\s@]+\.[^\p{Z}\s@]+$`)

// ValidationError describes the first problem found in a form.
// Field is empty when no single field should receive focus (honeypot).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validate checks the form and returns nil or a *ValidationError for the
// first failing rule. It does not modify the form.
func Validate(f FormState) error {
	if f.Website != "" {
		return &ValidationError{Message: MsgSpam}
	}

	for _, name := range RequiredFields {
		if strings.TrimSpace(f.Value(name)) == "" {
			return &ValidationError{Field: name, Message: MsgRequired}
		}
	}

	if !f.Consent {
		return &ValidationError{Field: FieldConsent, Message: MsgConsent}
	}

	if !emailPattern.MatchString(f.Email) {
		return &ValidationError{Field: FieldEmail, Message: MsgInvalidEmail}
	}

	for _, name := range []string{FieldStartDate, FieldEndDate} {
		if _, err := ParseDate(f.Value(name)); err != nil {
			return &ValidationError{Field: name, Message: MsgInvalidDate}
		}
	}

	if DateBefore(f.EndDate, f.StartDate) {
		return &ValidationError{Field: FieldEndDate, Message: MsgEndBeforeStart}
	}

	return nil
}

// CheckTripDates applies the date input constraints Validate cannot know
// about: neither date may be earlier than today ("YYYY-MM-DD").
func CheckTripDates(f FormState, today string) error {
	for _, name := range []string{FieldStartDate, FieldEndDate} {
		if err := CheckDateInput(f.Value(name), today); err != nil {
			return &ValidationError{Field: name, Message: err.Error()}
		}
	}
	if DateBefore(f.EndDate, f.StartDate) {
		return &ValidationError{Field: FieldEndDate, Message: MsgEndBeforeStart}
	}
	return nil
}
