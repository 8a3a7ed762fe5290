package client

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d(][\d\s\-().]*$`)
)

func invalid(field, value, reason string) error {
	return &pipedrive.ValidationError{Field: field, Value: value, Reason: reason}
}

func errRequestRequired() error {
	return invalid("request", "", "is required")
}

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "", "is required")
	}

	return nil
}

func validateDate(field string, value *string) error {
	if value == nil {
		return nil
	}

	_, err := time.Parse(constants.DateLayout, *value)
	if err != nil {
		return invalid(field, *value, "expected YYYY-MM-DD")
	}

	return nil
}

func validateClock(field string, value *string) error {
	if value == nil {
		return nil
	}

	_, err := time.Parse(constants.ClockLayout, *value)
	if err != nil {
		return invalid(field, *value, "expected HH:MM")
	}

	return nil
}

func validateEmail(value *string) error {
	if value == nil {
		return nil
	}

	if !emailPattern.MatchString(*value) {
		return invalid("email", *value, "not a valid email address")
	}

	return nil
}

func validatePhone(value *string) error {
	if value == nil {
		return nil
	}

	if !phonePattern.MatchString(*value) {
		return invalid("phone", *value, "not a valid phone number")
	}

	return nil
}

func validateOneOf(field string, value *string, allowed []string) error {
	if value == nil {
		return nil
	}

	if !slices.Contains(allowed, *value) {
		return invalid(field, *value, "allowed values are: "+strings.Join(allowed, ", "))
	}

	return nil
}

func validateVisibleTo(value *string) error {
	return validateOneOf("visible_to", value, constants.VisibleToValues())
}

func validateProbability(value *int) error {
	if value == nil {
		return nil
	}

	if *value < constants.MinProbability || *value > constants.MaxProbability {
		return invalid("probability", strconv.Itoa(*value), "must be between 0 and 100")
	}

	return nil
}

func validateParticipants(values []pipedrive.Participant) error {
	for i, participant := range values {
		if participant.PersonID <= 0 {
			return invalid("participants", strconv.Itoa(i), "person_id is required")
		}
	}

	return nil
}

func validateAttendees(values []pipedrive.Attendee) error {
	for i, attendee := range values {
		if attendee.EmailAddress == "" && attendee.PersonID <= 0 && attendee.UserID <= 0 {
			return invalid("attendees", strconv.Itoa(i), "email_address, person_id or user_id is required")
		}

		if attendee.EmailAddress != "" && !emailPattern.MatchString(attendee.EmailAddress) {
			return invalid("attendees", attendee.EmailAddress, "not a valid email address")
		}
	}

	return nil
}

func validateID(field string, id int) error {
	if id <= 0 {
		return invalid(field, strconv.Itoa(id), "must be a positive integer")
	}

	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// dueDate validates a YYYY-MM-DD date and rewrites it as YYYY/MM/DD.
func dueDate(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	parsed, err := time.Parse(constants.DateLayout, *value)
	if err != nil {
		return nil, invalid("due_date", *value, "expected YYYY-MM-DD")
	}

	formatted := parsed.Format(constants.ActivityDueDateLayout)

	return &formatted, nil
}
